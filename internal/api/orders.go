package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Meerdlawar/SweetDive/internal/domain"
)

// OrderListParams filter and page the order list.
type OrderListParams struct {
	Page     int
	PageSize int
	Search   string
	Status   string
}

// ListOrders returns one page of orders, most recently placed first.
func (c *Client) ListOrders(ctx context.Context, params OrderListParams) (*domain.ListResult[domain.Order], error) {
	const op = "api.orders.list"
	query := url.Values{}
	if params.Page > 1 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Status != "" {
		query.Set("status", params.Status)
	}
	raw, err := c.doRaw(ctx, op, http.MethodGet, "/orders/", query, nil)
	if err != nil {
		return nil, err
	}
	items, count, counted, err := decodeList[domain.Order](op, raw)
	if err != nil {
		return nil, err
	}
	return &domain.ListResult[domain.Order]{
		Items:    items,
		Count:    count,
		Counted:  counted,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

// GetOrder fetches a single order, including its line items, by id.
func (c *Client) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, "api.orders.get", http.MethodGet, fmt.Sprintf("/orders/%d/", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateOrder creates an order together with its line items. The backend
// computes and returns the authoritative total.
func (c *Client) CreateOrder(ctx context.Context, params domain.OrderParams) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, "api.orders.create", http.MethodPost, "/orders/", nil, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrder replaces an order's details and line items.
func (c *Client) UpdateOrder(ctx context.Context, id int, params domain.OrderParams) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, "api.orders.update", http.MethodPut, fmt.Sprintf("/orders/%d/", id), nil, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteOrder removes an order and its line items.
func (c *Client) DeleteOrder(ctx context.Context, id int) error {
	return c.do(ctx, "api.orders.delete", http.MethodDelete, fmt.Sprintf("/orders/%d/", id), nil, nil, nil)
}

// OrderProducts returns the line items of one order.
func (c *Client) OrderProducts(ctx context.Context, orderID int) ([]domain.OrderLine, error) {
	var out []domain.OrderLine
	if err := c.do(ctx, "api.orders.products", http.MethodGet, fmt.Sprintf("/orders/%d/products/", orderID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddOrderProduct adds a product to an existing order. Adding a product
// that is already on the order increases its quantity; the backend
// recalculates the total either way.
func (c *Client) AddOrderProduct(ctx context.Context, orderID, productID, quantity int) error {
	body := map[string]int{"product_id": productID, "quantity": quantity}
	return c.do(ctx, "api.orders.products.add", http.MethodPost, fmt.Sprintf("/orders/%d/add_product/", orderID), nil, body, nil)
}

// RemoveOrderProduct removes a product's line item from an order.
func (c *Client) RemoveOrderProduct(ctx context.Context, orderID, productID int) error {
	body := map[string]int{"product_id": productID}
	return c.do(ctx, "api.orders.products.remove", http.MethodPost, fmt.Sprintf("/orders/%d/remove_product/", orderID), nil, body, nil)
}

// OrderStatuses returns the order status choices in backend order.
func (c *Client) OrderStatuses(ctx context.Context) (domain.LookupSet, error) {
	var out domain.LookupSet
	if err := c.do(ctx, "api.orders.statuses", http.MethodGet, "/orders/statuses/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PaymentMethods returns the payment method choices in backend order.
func (c *Client) PaymentMethods(ctx context.Context) (domain.LookupSet, error) {
	var out domain.LookupSet
	if err := c.do(ctx, "api.orders.payments", http.MethodGet, "/orders/payment_methods/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
