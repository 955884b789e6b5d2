package caches

import (
	"context"
	"sync"

	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// CustomerCache keeps a snapshot of the customer directory. The directory
// changes rarely, so it is loaded once and held until invalidated.
type CustomerCache struct {
	customers ports.CustomerRepository

	mu     sync.Mutex
	all    []customer.Customer
	loaded bool
}

// NewCustomerCache creates a directory cache over the given repository.
func NewCustomerCache(customers ports.CustomerRepository) (*CustomerCache, error) {
	if customers == nil {
		return nil, errs.NewValueIsRequiredError("customers")
	}
	return &CustomerCache{customers: customers}, nil
}

// Get returns the customer directory, loading it on first use.
func (c *CustomerCache) Get(ctx context.Context) ([]customer.Customer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		all, err := c.customers.LoadAll(ctx)
		if err != nil {
			return nil, err
		}
		c.all = all
		c.loaded = true
	}

	snapshot := make([]customer.Customer, len(c.all))
	copy(snapshot, c.all)
	return snapshot, nil
}

// FindByName returns the directory entry whose name contains the given text,
// case-insensitively, or nil when no entry matches.
func (c *CustomerCache) FindByName(ctx context.Context, name string) (*customer.Customer, error) {
	if name == "" {
		return nil, nil
	}

	all, err := c.Get(ctx)
	if err != nil {
		return nil, err
	}

	for i := range all {
		if all[i].NameContains(name) {
			return &all[i], nil
		}
	}
	return nil, nil
}

// Invalidate drops the snapshot; the next Get reloads the directory.
func (c *CustomerCache) Invalidate() {
	c.mu.Lock()
	c.loaded = false
	c.all = nil
	c.mu.Unlock()
}
