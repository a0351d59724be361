package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Meerdlawar/SweetDive/internal/domain"
)

// ProductListParams filter and page the product list.
type ProductListParams struct {
	Page     int
	PageSize int
	Search   string
	Type     string
}

// ListProducts returns one page of products.
func (c *Client) ListProducts(ctx context.Context, params ProductListParams) (*domain.ListResult[domain.Product], error) {
	const op = "api.products.list"
	query := url.Values{}
	if params.Page > 1 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Type != "" {
		query.Set("product_type", params.Type)
	}
	raw, err := c.doRaw(ctx, op, http.MethodGet, "/products/", query, nil)
	if err != nil {
		return nil, err
	}
	items, count, counted, err := decodeList[domain.Product](op, raw)
	if err != nil {
		return nil, err
	}
	return &domain.ListResult[domain.Product]{
		Items:    items,
		Count:    count,
		Counted:  counted,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, "api.products.get", http.MethodGet, fmt.Sprintf("/products/%d/", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct creates a product.
func (c *Client) CreateProduct(ctx context.Context, params domain.ProductParams) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, "api.products.create", http.MethodPost, "/products/", nil, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct replaces a product's details.
func (c *Client) UpdateProduct(ctx context.Context, id int, params domain.ProductParams) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, "api.products.update", http.MethodPut, fmt.Sprintf("/products/%d/", id), nil, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, "api.products.delete", http.MethodDelete, fmt.Sprintf("/products/%d/", id), nil, nil, nil)
}

// ProductOptions returns the unpaginated id/name/price tuples used by the
// order form's line-item editor.
func (c *Client) ProductOptions(ctx context.Context) ([]domain.ProductOption, error) {
	var out []domain.ProductOption
	if err := c.do(ctx, "api.products.options", http.MethodGet, "/products/list_simple/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProductTypes returns the product type choices in backend order.
func (c *Client) ProductTypes(ctx context.Context) (domain.LookupSet, error) {
	var out domain.LookupSet
	if err := c.do(ctx, "api.products.types", http.MethodGet, "/products/types/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Suitabilities returns the dietary suitability choices in backend order.
func (c *Client) Suitabilities(ctx context.Context) (domain.LookupSet, error) {
	var out domain.LookupSet
	if err := c.do(ctx, "api.products.suitabilities", http.MethodGet, "/products/suitabilities/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
