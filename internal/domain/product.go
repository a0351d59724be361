package domain

import "time"

// Product mirrors the backend product record.
type Product struct {
	ID                 int       `json:"product_id"`
	Name               string    `json:"product_name"`
	Price              Money     `json:"product_price"`
	Type               string    `json:"product_type"`
	TypeDisplay        string    `json:"product_type_display,omitempty"`
	Suitability        string    `json:"product_suitability"`
	SuitabilityDisplay string    `json:"product_suitability_display,omitempty"`
	IsActive           bool      `json:"is_active"`
	Allergens          []Allergen `json:"allergens,omitempty"`
	CreatedAt          time.Time `json:"created_at,omitempty"`
	UpdatedAt          time.Time `json:"updated_at,omitempty"`
}

// TypeLabel returns the backend display label, falling back to the raw value.
func (p *Product) TypeLabel() string {
	if p.TypeDisplay != "" {
		return p.TypeDisplay
	}
	return p.Type
}

// SuitabilityLabel returns the backend display label, falling back to the raw value.
func (p *Product) SuitabilityLabel() string {
	if p.SuitabilityDisplay != "" {
		return p.SuitabilityDisplay
	}
	return p.Suitability
}

// ProductParams carries the editable product fields for create and update.
// Allergens travel as IDs; the backend resolves the relation.
type ProductParams struct {
	Name        string `json:"product_name"`
	Price       Money  `json:"product_price"`
	Type        string `json:"product_type"`
	Suitability string `json:"product_suitability"`
	IsActive    bool   `json:"is_active"`
	AllergenIDs []int  `json:"allergens,omitempty"`
}

// ProductOption is the simplified shape served by /products/list_simple/:
// active products only, for order line-item selectors. Its price is the
// lookup unit price the order form's estimated total is computed from.
type ProductOption struct {
	ID    int    `json:"product_id"`
	Name  string `json:"product_name"`
	Price Money  `json:"product_price"`
}

// ProductOptionByID finds an option in the lookup set, or nil.
func ProductOptionByID(options []ProductOption, id int) *ProductOption {
	for i := range options {
		if options[i].ID == id {
			return &options[i]
		}
	}
	return nil
}
