// Package stock models the product catalog: items identified by normalized
// name and unit, carrying a unit price and the current on-hand quantity.
package stock

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when attempting to use an Item that
// was not created through NewItem or RestoreItem.
var ErrItemIsNotConstructed = errs.NewValueIsRequiredError(
	"stock item must be created via NewItem constructor")

// Item is a catalog entry. Identity is the pair (normalized name, normalized
// unit); price and on-hand quantity are attributes. Row keeps the backing
// store row reference so the ledger can write the deduction back to the exact
// cell the quantity was read from.
//
// The on-hand quantity is never negative at rest; Deduct enforces that.
type Item struct { //nolint:recvcheck //using for validation
	name     string
	unit     string
	price    float64
	quantity int
	row      int

	guard guard.ConstructorGuard
}

// NormalizeKey builds the identity key for a (name, unit) pair:
// both parts lower-cased and trimmed, joined with "|".
func NormalizeKey(name, unit string) string {
	return normalize(name) + "|" + normalize(unit)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NewItem creates a catalog entry. Name and unit must be non-blank, price
// must not be negative, and quantity must not be negative.
func NewItem(name, unit string, price float64, quantity int, row int) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setName(name),
		item.setUnit(unit),
		item.setPrice(price),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	item.row = row
	return item, nil
}

// Validate checks that the Item was created through its constructor.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// Name returns the item name as stored in the catalog (display form).
func (i Item) Name() string {
	return i.name
}

// Unit returns the selling unit (bag, crate, bottle, ...).
func (i Item) Unit() string {
	return i.unit
}

// Price returns the unit price.
func (i Item) Price() float64 {
	return i.price
}

// Quantity returns the on-hand quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// Row returns the backing store row reference of this item.
func (i Item) Row() int {
	return i.row
}

// Key returns the identity key: normalized name + "|" + normalized unit.
func (i Item) Key() string {
	return NormalizeKey(i.name, i.unit)
}

// CanFulfill reports whether the on-hand quantity covers the requested amount.
func (i Item) CanFulfill(requested int) bool {
	return requested > 0 && i.quantity >= requested
}

// Deduct returns a copy of the item with the on-hand quantity reduced by
// requested. Fails with an InsufficientStockError carrying the available and
// requested quantities if the item cannot fulfill the request.
func (i Item) Deduct(requested int) (Item, error) {
	if err := i.Validate(); err != nil {
		return Item{}, err
	}

	if requested <= 0 {
		return Item{}, errs.NewValueIsInvalidError(fmt.Sprintf("requested quantity %d must be positive", requested))
	}

	if i.quantity < requested {
		return Item{}, errs.NewInsufficientStockError(i.name, i.quantity, requested)
	}

	deducted := i
	deducted.quantity -= requested
	return deducted, nil
}

// Restock returns a copy of the item with the on-hand quantity increased by
// amount, used when a canceled order returns its quantities.
func (i Item) Restock(amount int) (Item, error) {
	if err := i.Validate(); err != nil {
		return Item{}, err
	}

	if amount <= 0 {
		return Item{}, errs.NewValueIsInvalidError(fmt.Sprintf("restock amount %d must be positive", amount))
	}

	restocked := i
	restocked.quantity += amount
	return restocked, nil
}

func (i *Item) setName(name string) error {
	if normalize(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}

	i.name = strings.TrimSpace(name)
	return nil
}

func (i *Item) setUnit(unit string) error {
	if normalize(unit) == "" {
		return errs.NewValueIsRequiredError("unit")
	}

	i.unit = strings.TrimSpace(unit)
	return nil
}

func (i *Item) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidError("price cannot be negative")
	}

	i.price = price
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidError("quantity cannot be negative")
	}

	i.quantity = quantity
	return nil
}
