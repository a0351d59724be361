package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Meerdlawar/SweetDive/internal/domain"
)

// ListAllergens returns every allergen record. The backend does not paginate
// this collection; filtering happens in the handler.
func (c *Client) ListAllergens(ctx context.Context) ([]domain.Allergen, error) {
	var out []domain.Allergen
	if err := c.do(ctx, "api.allergens.list", http.MethodGet, "/allergens/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAllergen fetches a single allergen by id.
func (c *Client) GetAllergen(ctx context.Context, id int) (*domain.Allergen, error) {
	var out domain.Allergen
	if err := c.do(ctx, "api.allergens.get", http.MethodGet, fmt.Sprintf("/allergens/%d/", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateAllergen creates an allergen record.
func (c *Client) CreateAllergen(ctx context.Context, params domain.AllergenParams) (*domain.Allergen, error) {
	var out domain.Allergen
	if err := c.do(ctx, "api.allergens.create", http.MethodPost, "/allergens/", nil, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAllergen replaces an allergen's details.
func (c *Client) UpdateAllergen(ctx context.Context, id int, params domain.AllergenParams) (*domain.Allergen, error) {
	var out domain.Allergen
	if err := c.do(ctx, "api.allergens.update", http.MethodPut, fmt.Sprintf("/allergens/%d/", id), nil, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAllergen removes an allergen record.
func (c *Client) DeleteAllergen(ctx context.Context, id int) error {
	return c.do(ctx, "api.allergens.delete", http.MethodDelete, fmt.Sprintf("/allergens/%d/", id), nil, nil, nil)
}

// AllergenTypes returns the allergen name choices in backend order.
func (c *Client) AllergenTypes(ctx context.Context) (domain.LookupSet, error) {
	var out domain.LookupSet
	if err := c.do(ctx, "api.allergens.types", http.MethodGet, "/allergens/types/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AllergenOverview returns the denormalised allergen/product matrix shown
// on the allergen screen's overview panel.
func (c *Client) AllergenOverview(ctx context.Context) ([]domain.AllergenOverview, error) {
	var out []domain.AllergenOverview
	if err := c.do(ctx, "api.allergens.overview", http.MethodGet, "/allergens/all_info/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
