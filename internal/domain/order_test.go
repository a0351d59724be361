package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimatedTotal(t *testing.T) {
	options := []ProductOption{
		{ID: 5, Name: "Victoria Sponge", Price: 350},
		{ID: 7, Name: "Celebration Cake", Price: 1000},
	}

	tests := []struct {
		name  string
		items []OrderLineItem
		want  Money
	}{
		{
			name:  "no rows",
			items: nil,
			want:  0,
		},
		{
			name: "two rows",
			items: []OrderLineItem{
				{Product: 5, Quantity: 2},
				{Product: 7, Quantity: 1},
			},
			want: 1700, // 3.50 x 2 + 10.00
		},
		{
			name: "quantity change recomputes",
			items: []OrderLineItem{
				{Product: 5, Quantity: 3},
			},
			want: 1050,
		},
		{
			name: "unknown product contributes nothing",
			items: []OrderLineItem{
				{Product: 99, Quantity: 4},
				{Product: 7, Quantity: 1},
			},
			want: 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimatedTotal(tt.items, options))
		})
	}
}

func TestOrderParamsMarshalsBareDates(t *testing.T) {
	placed := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	due := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	b, err := json.Marshal(OrderParams{
		Customer:        3,
		Status:          "pending",
		MethodOfPayment: "cash",
		OrderPlaced:     placed,
		OrderDue:        &due,
		Products:        []OrderLineItem{{Product: 5, Quantity: 2}},
	})
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "2025-03-14", got["order_placed"])
	assert.Equal(t, "2025-03-20", got["order_due"])

	// No due date is sent as an explicit null.
	b, err = json.Marshal(OrderParams{OrderPlaced: placed})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"order_due":null`)
}

func TestOrderLabels(t *testing.T) {
	o := Order{Status: "pending", MethodOfPayment: "cash"}
	assert.Equal(t, "pending", o.StatusLabel())
	assert.Equal(t, "cash", o.PaymentLabel())

	o.StatusDisplay = "Pending"
	o.MethodOfPaymentDisplay = "Cash"
	assert.Equal(t, "Pending", o.StatusLabel())
	assert.Equal(t, "Cash", o.PaymentLabel())
}
