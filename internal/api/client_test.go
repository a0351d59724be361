package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meerdlawar/SweetDive/internal/auth"
	"github.com/Meerdlawar/SweetDive/internal/domain"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(srv.URL, 5*time.Second, logger)
}

func TestClientSendsTokenHeader(t *testing.T) {
	var gotAuth string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user_id": 1, "username": "anna"}`))
	})

	ctx := auth.WithToken(context.Background(), "abc123")
	_, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Token abc123", gotAuth)
}

func TestClientOmitsHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	_, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClientStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
	}{
		{
			name:     "unauthorized",
			status:   http.StatusUnauthorized,
			body:     `{"detail": "Invalid token."}`,
			wantCode: domain.EUNAUTHORIZED,
		},
		{
			name:     "forbidden",
			status:   http.StatusForbidden,
			body:     `{"detail": "Not allowed."}`,
			wantCode: domain.EFORBIDDEN,
		},
		{
			name:     "not found",
			status:   http.StatusNotFound,
			body:     `{"detail": "Not found."}`,
			wantCode: domain.ENOTFOUND,
		},
		{
			name:     "conflict",
			status:   http.StatusConflict,
			body:     `{"message": "Already exists."}`,
			wantCode: domain.ECONFLICT,
		},
		{
			name:     "server error",
			status:   http.StatusBadGateway,
			body:     `upstream down`,
			wantCode: domain.EINTERNAL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.GetCustomer(context.Background(), 7)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, domain.ErrorCode(err))
		})
	}
}

func TestClientValidationErrors(t *testing.T) {
	t.Run("wrapped errors", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success": false, "message": "Registration failed", "errors": {"email": ["Enter a valid email address."]}}`))
		})

		_, err := c.Register(context.Background(), domain.RegisterParams{})
		require.Error(t, err)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

		fields := domain.FieldErrors(err)
		assert.Equal(t, "Enter a valid email address.", fields["email"])
	})

	t.Run("bare field map", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"product_name": ["This field may not be blank."], "product_price": ["A valid number is required."]}`))
		})

		_, err := c.CreateProduct(context.Background(), domain.ProductParams{})
		require.Error(t, err)

		fields := domain.FieldErrors(err)
		assert.Equal(t, "This field may not be blank.", fields["product_name"])
		assert.Equal(t, "A valid number is required.", fields["product_price"])
	})
}

func TestListCustomersEnvelope(t *testing.T) {
	var gotQuery string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"count": 23, "results": [{"customer_id": 1, "first_name": "Rosa", "last_name": "Diaz"}]}`))
	})

	result, err := c.ListCustomers(context.Background(), CustomerListParams{Page: 3, PageSize: 10, Search: "rosa"})
	require.NoError(t, err)

	assert.Equal(t, "page=3&search=rosa", gotQuery)
	assert.True(t, result.Counted)
	assert.Equal(t, 23, result.Count)
	assert.Equal(t, 3, result.TotalPages())
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Rosa Diaz", result.Items[0].DisplayName())
}

func TestListOrdersBareArray(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"order_id": 5, "customer_name": "Rosa Diaz", "status": "pending"}]`))
	})

	result, err := c.ListOrders(context.Background(), OrderListParams{Page: 1, PageSize: 10})
	require.NoError(t, err)

	assert.False(t, result.Counted)
	assert.Equal(t, 1, result.TotalPages())
	require.Len(t, result.Items, 1)
	assert.Equal(t, 5, result.Items[0].ID)
}

func TestLookupSetOrderPreserved(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pending": "Pending", "confirmed": "Confirmed", "in_progress": "In Progress", "completed": "Completed", "cancelled": "Cancelled"}`))
	})

	statuses, err := c.OrderStatuses(context.Background())
	require.NoError(t, err)

	require.Len(t, statuses, 5)
	assert.Equal(t, "pending", statuses[0].Value)
	assert.Equal(t, "cancelled", statuses[4].Value)
}

func TestClientUnreachableBackend(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := New("http://127.0.0.1:1", 500*time.Millisecond, logger)

	_, err := c.ListAllergens(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.EUNAVAILABLE, domain.ErrorCode(err))
}
