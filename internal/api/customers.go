package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Meerdlawar/SweetDive/internal/domain"
)

// CustomerListParams filter and page the customer list.
type CustomerListParams struct {
	Page     int
	PageSize int
	Search   string
}

// ListCustomers returns one page of customers, newest first.
func (c *Client) ListCustomers(ctx context.Context, params CustomerListParams) (*domain.ListResult[domain.Customer], error) {
	const op = "api.customers.list"
	query := url.Values{}
	if params.Page > 1 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	raw, err := c.doRaw(ctx, op, http.MethodGet, "/customers/", query, nil)
	if err != nil {
		return nil, err
	}
	items, count, counted, err := decodeList[domain.Customer](op, raw)
	if err != nil {
		return nil, err
	}
	return &domain.ListResult[domain.Customer]{
		Items:    items,
		Count:    count,
		Counted:  counted,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

// GetCustomer fetches a single customer by id.
func (c *Client) GetCustomer(ctx context.Context, id int) (*domain.Customer, error) {
	var out domain.Customer
	if err := c.do(ctx, "api.customers.get", http.MethodGet, fmt.Sprintf("/customers/%d/", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCustomer creates a customer record.
func (c *Client) CreateCustomer(ctx context.Context, params domain.CustomerParams) (*domain.Customer, error) {
	var out domain.Customer
	if err := c.do(ctx, "api.customers.create", http.MethodPost, "/customers/", nil, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCustomer replaces a customer's details.
func (c *Client) UpdateCustomer(ctx context.Context, id int, params domain.CustomerParams) (*domain.Customer, error) {
	var out domain.Customer
	if err := c.do(ctx, "api.customers.update", http.MethodPut, fmt.Sprintf("/customers/%d/", id), nil, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCustomer removes a customer record.
func (c *Client) DeleteCustomer(ctx context.Context, id int) error {
	return c.do(ctx, "api.customers.delete", http.MethodDelete, fmt.Sprintf("/customers/%d/", id), nil, nil, nil)
}

// CustomerOptions returns the unpaginated id/name pairs used to populate
// the customer select on the order form.
func (c *Client) CustomerOptions(ctx context.Context) ([]domain.CustomerOption, error) {
	var out []domain.CustomerOption
	if err := c.do(ctx, "api.customers.options", http.MethodGet, "/customers/list_simple/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
