package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupSetUnmarshalPreservesOrder(t *testing.T) {
	payload := `{"pending":"Pending","confirmed":"Confirmed","in_progress":"In Progress","completed":"Completed","cancelled":"Cancelled"}`

	var set LookupSet
	require.NoError(t, json.Unmarshal([]byte(payload), &set))

	require.Len(t, set, 5)
	assert.Equal(t, "pending", set[0].Value)
	assert.Equal(t, "confirmed", set[1].Value)
	assert.Equal(t, "cancelled", set[4].Value)
	assert.Equal(t, "In Progress", set[2].Label)
}

func TestLookupSetLabel(t *testing.T) {
	set := LookupSet{
		{Value: "cash", Label: "Cash"},
		{Value: "card", Label: "Card"},
	}

	assert.Equal(t, "Cash", set.Label("cash"))
	assert.Equal(t, "paypal", set.Label("paypal")) // unknown values fall back to the raw value
	assert.True(t, set.Contains("card"))
	assert.False(t, set.Contains("paypal"))
}

func TestLookupSetRoundTrip(t *testing.T) {
	set := LookupSet{
		{Value: "starter", Label: "Starter"},
		{Value: "main", Label: "Main Course"},
	}

	b, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `{"starter":"Starter","main":"Main Course"}`, string(b))

	var back LookupSet
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, set, back)
}
