package commands

import (
	"errors"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCleanupPositionsCommandIsNotConstructed = errors.New(
	"CleanupPositionsCommand must be created via NewCleanupPositionsCommand constructor",
)

// CleanupPositionsCommand represents a request to drop position observations
// older than the retention window.
type CleanupPositionsCommand struct { //nolint:recvcheck //using for validation
	retention time.Duration

	guard guard.ConstructorGuard
}

// NewCleanupPositionsCommand creates a cleanup command. Retention must be
// positive.
func NewCleanupPositionsCommand(retention time.Duration) (CleanupPositionsCommand, error) {
	if retention <= 0 {
		return CleanupPositionsCommand{}, errs.NewValueIsInvalidError("retention must be greater than 0")
	}

	return CleanupPositionsCommand{retention: retention, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c CleanupPositionsCommand) Validate() error {
	return c.guard.Validate(ErrCleanupPositionsCommandIsNotConstructed)
}

// Retention returns the retention window.
func (c CleanupPositionsCommand) Retention() time.Duration {
	return c.retention
}
