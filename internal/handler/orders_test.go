package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meerdlawar/SweetDive/internal/domain"
)

func formRequest(t *testing.T, target string, values url.Values) *http.Request {
	t.Helper()
	r := httptest.NewRequest("POST", target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestOrderParamsFromForm(t *testing.T) {
	values := url.Values{
		"customer":             {"3"},
		"status":               {"pending"},
		"method_of_payment":    {"cash"},
		"order_placed":         {"2026-08-30"},
		"order_due":            {"2026-09-05"},
		"comments":             {"Birthday cake "},
		"products[0][product]": {"1"},
		"products[0][quantity]": {"2"},
		"products[1][product]": {"4"},
		"products[1][quantity]": {"1"},
	}

	params, err := orderParamsFromForm(formRequest(t, "/orders", values))
	require.NoError(t, err)

	assert.Equal(t, 3, params.Customer)
	assert.Equal(t, "pending", params.Status)
	assert.Equal(t, "cash", params.MethodOfPayment)
	assert.Equal(t, "Birthday cake", params.Comments)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), params.OrderPlaced)
	require.NotNil(t, params.OrderDue)
	assert.Equal(t, time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), *params.OrderDue)

	require.Len(t, params.Products, 2)
	assert.Equal(t, domain.OrderLineItem{Product: 1, Quantity: 2}, params.Products[0])
	assert.Equal(t, domain.OrderLineItem{Product: 4, Quantity: 1}, params.Products[1])
}

func TestOrderParamsFromForm_Validation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(url.Values)
		wantField string
	}{
		{
			name:      "missing customer",
			mutate:    func(v url.Values) { v.Del("customer") },
			wantField: "customer",
		},
		{
			name:      "missing placed date",
			mutate:    func(v url.Values) { v.Del("order_placed") },
			wantField: "order_placed",
		},
		{
			name:      "bad due date",
			mutate:    func(v url.Values) { v.Set("order_due", "tomorrow") },
			wantField: "order_due",
		},
		{
			name: "no line items",
			mutate: func(v url.Values) {
				v.Del("products[0][product]")
				v.Del("products[0][quantity]")
			},
			wantField: "products",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{
				"customer":             {"3"},
				"status":               {"pending"},
				"method_of_payment":    {"cash"},
				"order_placed":         {"2026-08-30"},
				"products[0][product]": {"1"},
				"products[0][quantity]": {"2"},
			}
			tt.mutate(values)

			_, err := orderParamsFromForm(formRequest(t, "/orders", values))
			require.Error(t, err)

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Contains(t, ve.Fields, tt.wantField)
		})
	}
}

func TestLineItemsFromForm_QuantityDefaultsToOne(t *testing.T) {
	values := url.Values{
		"products[0][product]":  {"5"},
		"products[0][quantity]": {"0"},
	}

	items := lineItemsFromForm(formRequest(t, "/orders", values))
	require.Len(t, items, 1)
	assert.Equal(t, domain.OrderLineItem{Product: 5, Quantity: 1}, items[0])
}

func TestDraftLines(t *testing.T) {
	lines := []domain.OrderLine{
		{ID: 10, Product: 1, Quantity: 2, UnitPrice: 350},
		{ID: 11, Product: 4, Quantity: 1, UnitPrice: 1000},
	}

	drafts := draftLines(lines)
	require.Len(t, drafts, 2)
	assert.Equal(t, domain.OrderLineItem{Product: 1, Quantity: 2}, drafts[0])
	assert.Equal(t, domain.OrderLineItem{Product: 4, Quantity: 1}, drafts[1])
}
