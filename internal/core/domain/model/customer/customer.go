// Package customer models the customer directory: known names, optionally
// with a delivery location. The directory feeds the order interpretation
// prompt and drives automatic delivery assignment.
package customer

import (
	"strings"

	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/pkg/errs"
)

// Customer is a directory entry. Location is nil for customers without a
// recorded delivery point; such customers can order but not be auto-assigned.
type Customer struct {
	name     string
	location *geo.Point
}

// NewCustomer creates a directory entry. Name must be non-blank.
func NewCustomer(name string, location *geo.Point) (Customer, error) {
	if strings.TrimSpace(name) == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer name")
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return Customer{}, err
		}
	}

	return Customer{name: strings.TrimSpace(name), location: location}, nil
}

// Name returns the customer name.
func (c Customer) Name() string {
	return c.name
}

// Location returns the delivery point, or nil when none is recorded.
func (c Customer) Location() *geo.Point {
	return c.location
}

// NameContains reports whether the customer's name contains s,
// case-insensitively. Used for the known-customer confidence signal.
func (c Customer) NameContains(s string) bool {
	return strings.Contains(strings.ToLower(c.name), strings.ToLower(s))
}
