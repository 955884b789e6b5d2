// Package commands contains the write-side use cases: order creation and
// cancellation, payment settlement, delivery dispatch and status updates,
// vehicle position recording, position log cleanup, and the message
// processing flow that ties interpretation to the rest. Each use case is a
// command object validated at construction plus a handler holding its
// dependencies.
package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
)

func isNotFound(err error) bool {
	return errors.Is(err, errs.ErrObjectNotFound)
}
