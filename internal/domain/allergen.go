package domain

import "strings"

// Allergen mirrors the backend allergen record. The products field is the
// simplified product list the allergen is attached to.
type Allergen struct {
	ID          int             `json:"allergen_id"`
	Name        string          `json:"allergen_name"`
	NameDisplay string          `json:"allergen_name_display,omitempty"`
	Description string          `json:"description,omitempty"`
	Products    []ProductOption `json:"products,omitempty"`
}

// DisplayName returns the backend display label, falling back to the raw value.
func (a *Allergen) DisplayName() string {
	if a.NameDisplay != "" {
		return a.NameDisplay
	}
	return a.Name
}

// Matches reports whether the allergen matches a case-insensitive search
// term over its name and description. Allergen search is client-side:
// it only ever sees the fetched set, never a backend query.
func (a *Allergen) Matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(a.Name), term) ||
		strings.Contains(strings.ToLower(a.NameDisplay), term) ||
		strings.Contains(strings.ToLower(a.Description), term)
}

// FilterAllergens returns the allergens matching term, preserving order.
func FilterAllergens(allergens []Allergen, term string) []Allergen {
	if term == "" {
		return allergens
	}
	out := make([]Allergen, 0, len(allergens))
	for _, a := range allergens {
		if a.Matches(term) {
			out = append(out, a)
		}
	}
	return out
}

// AllergenParams carries the editable allergen fields for create and update.
type AllergenParams struct {
	Name        string `json:"allergen_name"`
	Description string `json:"description"`
	ProductIDs  []int  `json:"product_ids,omitempty"`
}

// AllergenOverview is one row of GET /allergens/all_info/: a display-ready
// summary of an allergen and the product names it applies to.
type AllergenOverview struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Products    []string `json:"products"`
}
