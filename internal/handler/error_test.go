package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meerdlawar/SweetDive/internal/domain"
	"github.com/Meerdlawar/SweetDive/internal/session"
)

func TestErrorCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{domain.EINVALID, http.StatusBadRequest},
		{domain.EUNAUTHORIZED, http.StatusUnauthorized},
		{domain.EFORBIDDEN, http.StatusForbidden},
		{domain.ENOTFOUND, http.StatusNotFound},
		{domain.ECONFLICT, http.StatusConflict},
		{domain.EUNAVAILABLE, http.StatusBadGateway},
		{domain.EINTERNAL, http.StatusInternalServerError},
		{"bogus", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCodeToHTTPStatus(tt.code))
		})
	}
}

func testBase(t *testing.T) *base {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	secret := []byte("0123456789abcdef0123456789abcdef")
	return &base{
		sessions: session.NewStore(secret, "sweetdive_test", false, nil, logger),
		renderer: &Renderer{logger: logger},
		logger:   logger,
		pageSize: 10,
	}
}

func TestError_UnauthorizedClearsSessionAndRedirects(t *testing.T) {
	b := testBase(t)

	req := httptest.NewRequest("GET", "/customers", nil)
	rec := httptest.NewRecorder()

	b.Error(rec, req, domain.Unauthorized("api.customers.list", "Invalid token."))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	// The session cookie must be expired.
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Less(t, cookies[len(cookies)-1].MaxAge, 0)
}

func TestError_UnauthorizedHtmxGetsHXRedirect(t *testing.T) {
	b := testBase(t)

	req := httptest.NewRequest("GET", "/customers", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	b.Error(rec, req, domain.Unauthorized("api.customers.list", "Invalid token."))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("HX-Redirect"))
}

func TestError_HtmxGetsErrorToast(t *testing.T) {
	b := testBase(t)

	req := httptest.NewRequest("POST", "/customers", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	b.Error(rec, req, domain.NotFound("api.customers.get", "Customer not found."))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "toast-container"), "expected an OOB toast, got: %s", body)
	assert.True(t, strings.Contains(body, "Customer not found."), "toast should carry the message, got: %s", body)
}

func TestError_FullPageFlashesAndRedirectsBack(t *testing.T) {
	b := testBase(t)

	req := httptest.NewRequest("POST", "/orders", nil)
	req.Header.Set("Referer", "/orders?page=2")
	rec := httptest.NewRecorder()

	b.Error(rec, req, domain.Unavailable(io.ErrUnexpectedEOF, "api.orders.list"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/orders?page=2", rec.Header().Get("Location"))
	assert.NotEmpty(t, rec.Result().Cookies(), "expected a flash cookie")
}
