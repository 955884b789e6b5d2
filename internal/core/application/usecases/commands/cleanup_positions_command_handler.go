package commands

import (
	"context"

	"dispatch/internal/core/application/caches"
	"dispatch/internal/pkg/errs"
)

// CleanupPositionsCommandHandler trims the position log. The latest
// observation per vehicle may be removed too when the vehicle has been
// silent longer than the retention window; such vehicles simply disappear
// from the fleet until they report again.
type CleanupPositionsCommandHandler struct {
	vehicles *caches.VehicleCache
}

// NewCleanupPositionsCommandHandler creates a handler for position cleanup.
func NewCleanupPositionsCommandHandler(vehicles *caches.VehicleCache,
) (CleanupPositionsCommandHandler, error) {
	if vehicles == nil {
		return CleanupPositionsCommandHandler{}, errs.NewValueIsRequiredError("vehicles")
	}
	return CleanupPositionsCommandHandler{vehicles: vehicles}, nil
}

// Handle processes the cleanup and returns the number of observations removed.
func (h *CleanupPositionsCommandHandler) Handle(ctx context.Context, cmd CleanupPositionsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	return h.vehicles.CleanupOld(ctx, cmd.Retention())
}
