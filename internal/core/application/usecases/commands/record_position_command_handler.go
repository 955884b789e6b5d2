package commands

import (
	"context"

	"dispatch/internal/core/application/caches"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/pkg/errs"
)

// RecordPositionCommandHandler appends GPS reports to the position log
// through the vehicle cache, keeping the cached snapshot current.
type RecordPositionCommandHandler struct {
	vehicles *caches.VehicleCache
}

// NewRecordPositionCommandHandler creates a handler for position reports.
func NewRecordPositionCommandHandler(vehicles *caches.VehicleCache,
) (RecordPositionCommandHandler, error) {
	if vehicles == nil {
		return RecordPositionCommandHandler{}, errs.NewValueIsRequiredError("vehicles")
	}
	return RecordPositionCommandHandler{vehicles: vehicles}, nil
}

// Handle processes one position report.
func (h *RecordPositionCommandHandler) Handle(ctx context.Context, cmd RecordPositionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	observation, err := vehicle.NewVehicle(cmd.VehicleID(), cmd.Position(), cmd.SpeedKmh(),
		cmd.HeadingDeg(), cmd.Driver(), cmd.Status(), cmd.ReportedAt())
	if err != nil {
		return err
	}

	return h.vehicles.Record(ctx, observation)
}
