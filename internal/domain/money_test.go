package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Money
		wantErr bool
	}{
		{name: "two decimals", input: "3.50", want: 350},
		{name: "no decimals", input: "10", want: 1000},
		{name: "one decimal", input: "2.5", want: 250},
		{name: "zero", input: "0.00", want: 0},
		{name: "negative", input: "-0.25", want: -25},
		{name: "leading dot", input: ".75", want: 75},
		{name: "whitespace", input: " 1.00 ", want: 100},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "17.00", Money(1700).String())
	assert.Equal(t, "3.50", Money(350).String())
	assert.Equal(t, "0.05", Money(5).String())
	assert.Equal(t, "-1.25", Money(-125).String())
}

func TestMoneyUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Money
	}{
		{name: "decimal string", input: `"3.50"`, want: 350},
		{name: "number", input: `3.5`, want: 350},
		{name: "integer number", input: `10`, want: 1000},
		{name: "null", input: `null`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Money
			require.NoError(t, json.Unmarshal([]byte(tt.input), &m))
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestMoneyMarshalJSON(t *testing.T) {
	b, err := json.Marshal(Money(350))
	require.NoError(t, err)
	assert.Equal(t, `"3.50"`, string(b))
}
