package domain

import (
	"strings"
	"time"
)

// Customer mirrors the backend customer record.
type Customer struct {
	ID          int       `json:"customer_id"`
	Prefix      string    `json:"prefix,omitempty"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email,omitempty"`
	Subfix      string    `json:"subfix,omitempty"`
	FullName    string    `json:"full_name,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// DisplayName returns the backend-computed full name when present,
// otherwise first and last name joined.
func (c *Customer) DisplayName() string {
	if c.FullName != "" {
		return c.FullName
	}
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// CustomerParams carries the editable customer fields for create and update.
type CustomerParams struct {
	Prefix      string `json:"prefix,omitempty"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email,omitempty"`
	Subfix      string `json:"subfix,omitempty"`
}

// CustomerOption is the simplified shape served by /customers/list_simple/
// for populating the order form's customer selector.
type CustomerOption struct {
	ID       int    `json:"customer_id"`
	FullName string `json:"full_name"`
}
