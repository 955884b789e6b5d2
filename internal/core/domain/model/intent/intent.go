// Package intent models what the text-generation collaborator may say about a
// user message, as a closed set of tagged variants. The generator returns
// loosely-typed JSON; the boundary decodes it into exactly one of
// OrderIntent, PaymentIntent, or CancelIntent and rejects everything else,
// so ad hoc fields never propagate into the core.
package intent

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// UnspecifiedCustomer is the sentinel customer name the generator uses when
// the message does not name one.
const UnspecifiedCustomer = "unspecified"

// Confidence is the coarse trust label attached to an interpreted order. It
// decides whether the order may be auto-committed without confirmation.
type Confidence int

const (
	// Low means the interpretation is a guess.
	Low Confidence = iota

	// Medium means the interpretation is plausible but unconfirmed.
	Medium

	// High means the interpretation is trusted enough for auto-processing.
	High
)

// ConfidenceFromString parses "low", "medium" or "high".
func ConfidenceFromString(s string) (Confidence, error) {
	switch s {
	case "low":
		return Low, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	default:
		return Low, errs.NewValueIsInvalidError(fmt.Sprintf("%q is not a valid confidence", s))
	}
}

// String implements fmt.Stringer.
func (c Confidence) String() string {
	switch c {
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return "low"
	}
}

// MatchConfidence grades how well a mapped stock item agrees with the price
// hint extracted from the raw text.
type MatchConfidence int

const (
	// Partial means no hint was extracted or the price did not come close.
	Partial MatchConfidence = iota

	// Fuzzy means the catalog price is within 10% of the hinted price.
	Fuzzy

	// Exact means the catalog price equals the hinted price.
	Exact
)

// String implements fmt.Stringer.
func (m MatchConfidence) String() string {
	switch m {
	case Fuzzy:
		return "fuzzy"
	case Exact:
		return "exact"
	default:
		return "partial"
	}
}

// ItemRef is the generator's reference to a catalog entry: the zero-based
// index the prompt listed the item under, plus the requested quantity.
type ItemRef struct {
	StockIndex int
	Quantity   int
}

// Intent is the closed variant interface. Only the three types in this
// package implement it.
type Intent interface {
	isIntent()
}

// OrderIntent says the message places an order.
type OrderIntent struct {
	Customer       string
	Items          []ItemRef
	IsPaid         bool
	DeliveryPerson string
	Confidence     Confidence
}

func (OrderIntent) isIntent() {}

// PaymentIntent says the message settles payment for an order.
type PaymentIntent struct {
	Customer   string
	Confidence Confidence
}

func (PaymentIntent) isIntent() {}

// CancelIntent says the message asks to cancel an order.
type CancelIntent struct {
	Customer   string
	Confidence Confidence
}

func (CancelIntent) isIntent() {}
