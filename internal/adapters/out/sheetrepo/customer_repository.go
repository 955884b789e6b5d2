package sheetrepo

import (
	"context"

	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// Customers sheet columns.
const (
	customerColName    = 0
	customerColPhone   = 1
	customerColAddress = 2
	customerColLat     = 3
	customerColLng     = 4
)

// SheetCustomerRepository reads the customer directory.
type SheetCustomerRepository struct {
	store ports.TabularStore
}

// NewSheetCustomerRepository creates a customer repository over a tabular
// store.
func NewSheetCustomerRepository(store ports.TabularStore) (*SheetCustomerRepository, error) {
	if store == nil {
		return nil, errs.NewValueIsRequiredError("store")
	}
	return &SheetCustomerRepository{store: store}, nil
}

// LoadAll returns the directory in sheet order. Customers without usable
// coordinates are kept with a nil location.
func (r *SheetCustomerRepository) LoadAll(ctx context.Context) ([]customer.Customer, error) {
	rows, err := r.store.Read(ctx, CustomersSheet)
	if err != nil {
		return nil, err
	}

	directory := make([]customer.Customer, 0, len(rows))
	for i := 1; i < len(rows); i++ {
		name := cell(rows[i], customerColName)
		if name == "" {
			continue
		}

		var location *geo.Point
		lat := parseFloatCell(rows[i], customerColLat)
		lng := parseFloatCell(rows[i], customerColLng)
		if lat != 0 || lng != 0 {
			if point, err := geo.NewPoint(lat, lng); err == nil {
				location = &point
			}
		}

		c, err := customer.NewCustomer(name, location)
		if err != nil {
			return nil, err
		}
		directory = append(directory, c)
	}
	return directory, nil
}
