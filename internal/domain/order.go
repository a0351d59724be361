package domain

import (
	"encoding/json"
	"time"
)

// Order mirrors the backend order record. The nested line items and the
// display fields are read-only; total_price is the backend-computed,
// authoritative figure.
type Order struct {
	ID                     int         `json:"order_id"`
	Customer               int         `json:"customer"`
	CustomerName           string      `json:"customer_name,omitempty"`
	TotalPrice             Money       `json:"total_price"`
	MethodOfPayment        string      `json:"method_of_payment"`
	MethodOfPaymentDisplay string      `json:"method_of_payment_display,omitempty"`
	OrderPlaced            time.Time   `json:"order_placed"`
	OrderDue               *time.Time  `json:"order_due,omitempty"`
	Comments               string      `json:"comments,omitempty"`
	Status                 string      `json:"status"`
	StatusDisplay          string      `json:"status_display,omitempty"`
	OrderProducts          []OrderLine `json:"order_products,omitempty"`
	CreatedAt              time.Time   `json:"created_at,omitempty"`
	UpdatedAt              time.Time   `json:"updated_at,omitempty"`
}

// StatusLabel returns the backend display label, falling back to the raw value.
func (o *Order) StatusLabel() string {
	if o.StatusDisplay != "" {
		return o.StatusDisplay
	}
	return o.Status
}

// PaymentLabel returns the backend display label, falling back to the raw value.
func (o *Order) PaymentLabel() string {
	if o.MethodOfPaymentDisplay != "" {
		return o.MethodOfPaymentDisplay
	}
	return o.MethodOfPayment
}

// OrderLine is one committed product row on an order
// (GET /orders/{id}/products/ and the order_products nesting).
type OrderLine struct {
	ID           int    `json:"order_product_id"`
	Product      int    `json:"product"`
	ProductName  string `json:"product_name,omitempty"`
	ProductPrice Money  `json:"product_price,omitempty"`
	Quantity     int    `json:"quantity"`
	UnitPrice    Money  `json:"unit_price"`
	LineTotal    Money  `json:"line_total,omitempty"`
}

// OrderParams is the write shape for POST /orders/ and PUT /orders/{id}/.
// Line items carry product and quantity only; unit pricing and the total
// are the backend's responsibility.
type OrderParams struct {
	Customer        int             `json:"customer"`
	Status          string          `json:"status"`
	MethodOfPayment string          `json:"method_of_payment"`
	OrderPlaced     time.Time       `json:"order_placed"`
	OrderDue        *time.Time      `json:"order_due"`
	Comments        string          `json:"comments"`
	Products        []OrderLineItem `json:"products"`
}

// MarshalJSON writes the date fields as bare dates ("2006-01-02"), matching
// the form's date pickers. The backend stores them as midnight datetimes.
func (p OrderParams) MarshalJSON() ([]byte, error) {
	out := struct {
		Customer        int             `json:"customer"`
		Status          string          `json:"status"`
		MethodOfPayment string          `json:"method_of_payment"`
		OrderPlaced     string          `json:"order_placed"`
		OrderDue        *string         `json:"order_due"`
		Comments        string          `json:"comments"`
		Products        []OrderLineItem `json:"products"`
	}{
		Customer:        p.Customer,
		Status:          p.Status,
		MethodOfPayment: p.MethodOfPayment,
		OrderPlaced:     p.OrderPlaced.Format("2006-01-02"),
		Comments:        p.Comments,
		Products:        p.Products,
	}
	if p.OrderDue != nil {
		due := p.OrderDue.Format("2006-01-02")
		out.OrderDue = &due
	}
	return json.Marshal(out)
}

// OrderLineItem is a draft line-item row: a product reference and a quantity.
type OrderLineItem struct {
	Product  int `json:"product"`
	Quantity int `json:"quantity"`
}

// EstimatedTotal computes the advisory order total from draft rows and the
// product lookup set: sum of lookup unit price times quantity. It uses the
// prices the client already holds, not backend-confirmed pricing, so the
// figure may diverge from the total the backend computes on submission.
// Rows referencing a product missing from the lookup contribute nothing.
func EstimatedTotal(items []OrderLineItem, options []ProductOption) Money {
	var total Money
	for _, item := range items {
		if opt := ProductOptionByID(options, item.Product); opt != nil {
			total += opt.Price.Mul(item.Quantity)
		}
	}
	return total
}
