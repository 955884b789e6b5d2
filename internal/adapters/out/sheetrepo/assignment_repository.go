package sheetrepo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// Deliveries sheet columns, one row per assignment.
const (
	assignmentColOrderNo     = 0
	assignmentColVehicleID   = 1
	assignmentColCustomer    = 2
	assignmentColAssignedAt  = 3
	assignmentColStatus      = 4
	assignmentColLat         = 5
	assignmentColLng         = 6
	assignmentColDistance    = 7
	assignmentColCompletedAt = 8
)

// SheetAssignmentRepository persists delivery assignments on the Deliveries
// sheet. An order that is dispatched again gets a fresh row; reads resolve to
// the bottom-most row of the order.
type SheetAssignmentRepository struct {
	store ports.TabularStore
}

// NewSheetAssignmentRepository creates an assignment repository over a
// tabular store.
func NewSheetAssignmentRepository(store ports.TabularStore) (*SheetAssignmentRepository, error) {
	if store == nil {
		return nil, errs.NewValueIsRequiredError("store")
	}
	return &SheetAssignmentRepository{store: store}, nil
}

// Add appends the assignment as a new row.
func (r *SheetAssignmentRepository) Add(ctx context.Context, aggregate *delivery.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.store.Append(ctx, DeliveriesSheet, []ports.Row{r.toRow(aggregate)})
}

// GetByOrderNo returns the order's most recent assignment.
func (r *SheetAssignmentRepository) GetByOrderNo(ctx context.Context, orderNo int,
) (*delivery.Assignment, error) {
	rows, err := r.store.Read(ctx, DeliveriesSheet)
	if err != nil {
		return nil, err
	}

	row := r.lastRowOf(rows, orderNo)
	if row < 0 {
		return nil, errs.NewObjectNotFoundError(fmt.Sprintf("delivery for order %d", orderNo), orderNo)
	}
	return r.toDomain(rows[row])
}

// Update rewrites the status and completion cells of the order's most recent
// assignment row.
func (r *SheetAssignmentRepository) Update(ctx context.Context, aggregate *delivery.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rows, err := r.store.Read(ctx, DeliveriesSheet)
	if err != nil {
		return err
	}

	row := r.lastRowOf(rows, aggregate.OrderNo())
	if row < 0 {
		return errs.NewObjectNotFoundError(
			fmt.Sprintf("delivery for order %d", aggregate.OrderNo()), aggregate.OrderNo())
	}

	if err := r.store.WriteCell(ctx, DeliveriesSheet, row, assignmentColStatus,
		aggregate.Status().String()); err != nil {
		return err
	}
	if aggregate.CompletedAt() != nil {
		return r.store.WriteCell(ctx, DeliveriesSheet, row, assignmentColCompletedAt,
			aggregate.CompletedAt().Format(timeLayout))
	}
	return nil
}

// GetActive returns every assignment not yet completed, in sheet order.
func (r *SheetAssignmentRepository) GetActive(ctx context.Context) ([]*delivery.Assignment, error) {
	rows, err := r.store.Read(ctx, DeliveriesSheet)
	if err != nil {
		return nil, err
	}

	active := make([]*delivery.Assignment, 0, len(rows))
	for i := 1; i < len(rows); i++ {
		status, err := delivery.StatusFromString(cell(rows[i], assignmentColStatus))
		if err != nil || !status.IsActive() {
			continue
		}

		aggregate, err := r.toDomain(rows[i])
		if err != nil {
			return nil, err
		}
		active = append(active, aggregate)
	}
	return active, nil
}

func (r *SheetAssignmentRepository) lastRowOf(rows []ports.Row, orderNo int) int {
	for i := len(rows) - 1; i >= 1; i-- {
		if parseIntCell(rows[i], assignmentColOrderNo) == orderNo {
			return i
		}
	}
	return -1
}

func (r *SheetAssignmentRepository) toRow(aggregate *delivery.Assignment) ports.Row {
	completedAt := ""
	if aggregate.CompletedAt() != nil {
		completedAt = aggregate.CompletedAt().Format(timeLayout)
	}

	return ports.Row{
		strconv.Itoa(aggregate.OrderNo()),
		aggregate.VehicleID(),
		aggregate.Customer(),
		aggregate.AssignedAt().Format(timeLayout),
		aggregate.Status().String(),
		formatFloat(aggregate.Destination().Lat()),
		formatFloat(aggregate.Destination().Lng()),
		formatFloat(aggregate.DistanceKm()),
		completedAt,
	}
}

func (r *SheetAssignmentRepository) toDomain(row ports.Row) (*delivery.Assignment, error) {
	destination, err := geo.NewPoint(
		parseFloatCell(row, assignmentColLat),
		parseFloatCell(row, assignmentColLng),
	)
	if err != nil {
		return nil, err
	}

	assignedAt, err := time.Parse(timeLayout, cell(row, assignmentColAssignedAt))
	if err != nil {
		return nil, err
	}

	status, err := delivery.StatusFromString(cell(row, assignmentColStatus))
	if err != nil {
		return nil, err
	}

	var completedAt *time.Time
	if raw := cell(row, assignmentColCompletedAt); raw != "" {
		parsed, err := time.Parse(timeLayout, raw)
		if err != nil {
			return nil, err
		}
		completedAt = &parsed
	}

	return delivery.RestoreAssignment(
		parseIntCell(row, assignmentColOrderNo),
		cell(row, assignmentColVehicleID),
		cell(row, assignmentColCustomer),
		destination,
		parseFloatCell(row, assignmentColDistance),
		assignedAt,
		status,
		completedAt,
	)
}
