package sheetrepo

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// GPS sheet columns, one row per observation.
const (
	positionColVehicleID = 0
	positionColTimestamp = 1
	positionColLat       = 2
	positionColLng       = 3
	positionColSpeed     = 4
	positionColHeading   = 5
	positionColDriver    = 6
	positionColStatus    = 7
)

// SheetPositionRepository is the append-only GPS observation log.
type SheetPositionRepository struct {
	store ports.TabularStore
}

// NewSheetPositionRepository creates a position repository over a tabular
// store.
func NewSheetPositionRepository(store ports.TabularStore) (*SheetPositionRepository, error) {
	if store == nil {
		return nil, errs.NewValueIsRequiredError("store")
	}
	return &SheetPositionRepository{store: store}, nil
}

// LoadAll returns every observation in sheet order. Rows with a blank vehicle
// id or unparseable coordinates are skipped.
func (r *SheetPositionRepository) LoadAll(ctx context.Context) ([]vehicle.Vehicle, error) {
	rows, err := r.store.Read(ctx, PositionsSheet)
	if err != nil {
		return nil, err
	}

	observations := make([]vehicle.Vehicle, 0, len(rows))
	for i := 1; i < len(rows); i++ {
		if cell(rows[i], positionColVehicleID) == "" {
			continue
		}

		position, err := geo.NewPoint(
			parseFloatCell(rows[i], positionColLat),
			parseFloatCell(rows[i], positionColLng),
		)
		if err != nil {
			continue
		}

		observedAt, err := time.Parse(timeLayout, cell(rows[i], positionColTimestamp))
		if err != nil {
			continue
		}

		observation, err := vehicle.NewVehicle(
			cell(rows[i], positionColVehicleID),
			position,
			parseFloatCell(rows[i], positionColSpeed),
			parseFloatCell(rows[i], positionColHeading),
			cell(rows[i], positionColDriver),
			cell(rows[i], positionColStatus),
			observedAt,
		)
		if err != nil {
			continue
		}
		observations = append(observations, observation)
	}
	return observations, nil
}

// Append adds one observation row.
func (r *SheetPositionRepository) Append(ctx context.Context, observation vehicle.Vehicle) error {
	if err := observation.Validate(); err != nil {
		return err
	}

	return r.store.Append(ctx, PositionsSheet, []ports.Row{{
		observation.ID(),
		observation.ObservedAt().Format(timeLayout),
		formatFloat(observation.Position().Lat()),
		formatFloat(observation.Position().Lng()),
		formatFloat(observation.SpeedKmh()),
		formatFloat(observation.HeadingDeg()),
		observation.Driver(),
		observation.Status(),
	}})
}

// CleanupBefore removes observations older than the cutoff and returns how
// many were removed.
func (r *SheetPositionRepository) CleanupBefore(ctx context.Context, cutoff time.Time) (int, error) {
	rows, err := r.store.Read(ctx, PositionsSheet)
	if err != nil {
		return 0, err
	}

	var stale []int
	for i := 1; i < len(rows); i++ {
		observedAt, err := time.Parse(timeLayout, cell(rows[i], positionColTimestamp))
		if err != nil {
			continue
		}
		if observedAt.Before(cutoff) {
			stale = append(stale, i)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	if err := r.store.DeleteRows(ctx, PositionsSheet, stale); err != nil {
		return 0, err
	}
	return len(stale), nil
}
