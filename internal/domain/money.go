// Package domain contains the types the SweetDive backend exposes over its
// REST API, as this client observes them. All fields are treated as
// untrusted and optional; fallback rules live next to the types they guard.
package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Money is a decimal amount held as integer pence. The backend serializes
// prices as decimal strings ("3.50"); Money accepts both string and number
// JSON and round-trips back to the two-decimal string form.
type Money int64

// ParseMoney parses a decimal string like "3.50", "10" or "-0.25".
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("parse money: empty string")
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	pounds, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", s, err)
	}

	var pence int64
	switch len(frac) {
	case 0:
		pence = 0
	case 1:
		d, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse money %q: %w", s, err)
		}
		pence = d * 10
	default:
		// Truncate beyond two decimals; the backend never sends more.
		d, err := strconv.ParseInt(frac[:2], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse money %q: %w", s, err)
		}
		pence = d
	}

	m := Money(pounds*100 + pence)
	if neg {
		m = -m
	}
	return m, nil
}

// Mul scales the amount by an integer quantity.
func (m Money) Mul(qty int) Money {
	return m * Money(qty)
}

// String formats the amount as a plain decimal, e.g. "17.00".
func (m Money) String() string {
	v := int64(m)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts "3.50", 3.5 and null (null leaves the amount zero).
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*m = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		parsed, err := ParseMoney(str)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	// Round half away from zero to the nearest penny.
	if f >= 0 {
		*m = Money(f*100 + 0.5)
	} else {
		*m = Money(f*100 - 0.5)
	}
	return nil
}
