package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListResultTotalPages(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		counted bool
		size    int
		want    int
	}{
		{name: "35 of 10 rounds up", count: 35, counted: true, size: 10, want: 4},
		{name: "exact multiple", count: 30, counted: true, size: 10, want: 3},
		{name: "single page", count: 7, counted: true, size: 10, want: 1},
		{name: "empty", count: 0, counted: true, size: 10, want: 1},
		{name: "no count means one page", count: 0, counted: false, size: 10, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ListResult[Customer]{Count: tt.count, Counted: tt.counted, Page: 1, PageSize: tt.size}
			assert.Equal(t, tt.want, r.TotalPages())
		})
	}
}

func TestListResultNavigation(t *testing.T) {
	r := ListResult[Customer]{Count: 35, Counted: true, Page: 1, PageSize: 10}
	assert.False(t, r.HasPrevious())
	assert.True(t, r.HasNext())

	r.Page = 4
	assert.True(t, r.HasPrevious())
	assert.False(t, r.HasNext())
}

func TestFilterAllergens(t *testing.T) {
	allergens := []Allergen{
		{ID: 1, Name: "gluten", NameDisplay: "Cereals containing gluten"},
		{ID: 2, Name: "milk", NameDisplay: "Milk", Description: "Dairy products"},
		{ID: 3, Name: "nuts", NameDisplay: "Nuts"},
	}

	assert.Len(t, FilterAllergens(allergens, ""), 3)
	assert.Len(t, FilterAllergens(allergens, "MILK"), 1)
	assert.Len(t, FilterAllergens(allergens, "dairy"), 1)
	assert.Len(t, FilterAllergens(allergens, "cereal"), 1)
	assert.Empty(t, FilterAllergens(allergens, "shellfish"))
}
