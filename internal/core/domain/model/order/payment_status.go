package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// PaymentStatus is the payment state of an order.
//
// There are only two states and the transition is one-way in practice
// (unpaid -> paid), but the ledger stores the status as a cell that later
// operations overwrite, so both directions are representable.
type PaymentStatus int

const (
	// PaymentUnknown is the zero value and is invalid.
	PaymentUnknown PaymentStatus = iota

	// Unpaid is the initial payment state of a committed order.
	Unpaid

	// Paid marks the order as settled.
	Paid
)

func paymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown: "unknown",
		Unpaid:         "unpaid",
		Paid:           "paid",
	}
}

// PaymentStatusFromString parses "unpaid" or "paid".
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	switch s {
	case "unpaid":
		return Unpaid, nil
	case "paid":
		return Paid, nil
	default:
		return PaymentUnknown, errs.NewValueIsInvalidError(fmt.Sprintf("%q is not a valid payment status", s))
	}
}

// Validate checks the status is Unpaid or Paid.
func (s PaymentStatus) Validate() error {
	if s != Unpaid && s != Paid {
		return errs.NewValueIsInvalidError(fmt.Sprintf("%d is not a valid payment status", s))
	}
	return nil
}

// String implements fmt.Stringer.
func (s PaymentStatus) String() string {
	if str, ok := paymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
