package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDeliveryInfoQueryHandler_Handle(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	destination := mustPoint(t, 13.7563, 100.5018)

	t.Run("joins assignment with the vehicle's latest position", func(t *testing.T) {
		assignment := mustAssignment(t, 7, "truck-1", destination, 4.2)
		require.NoError(t, assignment.Transition(delivery.Delivering, now))

		assignments := new(MockAssignmentRepository)
		assignments.On("GetByOrderNo", ctx, 7).Return(assignment, nil)
		positions := new(MockPositionRepository)
		positions.On("LoadAll", ctx).Return([]vehicle.Vehicle{
			observation(t, "truck-1", 13.7463, 100.5018, 35, now),
		}, nil)

		handler, err := queries.NewGetDeliveryInfoQueryHandler(assignments, newVehicleCache(t, positions))
		require.NoError(t, err)

		query, err := queries.NewGetDeliveryInfoQuery(7)
		require.NoError(t, err)

		info, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, 7, info.OrderNo)
		assert.Equal(t, "truck-1", info.VehicleID)
		assert.Equal(t, "delivering", info.Status)
		require.NotNil(t, info.Vehicle)
		assert.InDelta(t, 1.11, info.RemainingKm, 0.05)
		assert.Equal(t, 2, info.ETAMinutes)
		assignments.AssertExpectations(t)
	})

	t.Run("vehicle without positions leaves tracking fields empty", func(t *testing.T) {
		assignment := mustAssignment(t, 7, "truck-1", destination, 4.2)

		assignments := new(MockAssignmentRepository)
		assignments.On("GetByOrderNo", ctx, 7).Return(assignment, nil)
		positions := new(MockPositionRepository)
		positions.On("LoadAll", ctx).Return([]vehicle.Vehicle{}, nil)

		handler, err := queries.NewGetDeliveryInfoQueryHandler(assignments, newVehicleCache(t, positions))
		require.NoError(t, err)

		query, err := queries.NewGetDeliveryInfoQuery(7)
		require.NoError(t, err)

		info, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		assert.Nil(t, info.Vehicle)
		assert.Zero(t, info.RemainingKm)
		assert.Zero(t, info.ETAMinutes)
	})

	t.Run("completed delivery reports no remaining distance", func(t *testing.T) {
		assignment := mustAssignment(t, 7, "truck-1", destination, 4.2)
		require.NoError(t, assignment.Transition(delivery.Completed, now))

		assignments := new(MockAssignmentRepository)
		assignments.On("GetByOrderNo", ctx, 7).Return(assignment, nil)
		positions := new(MockPositionRepository)
		positions.On("LoadAll", ctx).Return([]vehicle.Vehicle{
			observation(t, "truck-1", 13.70, 100.48, 0, now),
		}, nil)

		handler, err := queries.NewGetDeliveryInfoQueryHandler(assignments, newVehicleCache(t, positions))
		require.NoError(t, err)

		query, err := queries.NewGetDeliveryInfoQuery(7)
		require.NoError(t, err)

		info, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, "completed", info.Status)
		require.NotNil(t, info.CompletedAt)
		require.NotNil(t, info.Vehicle)
		assert.Zero(t, info.RemainingKm)
		assert.Zero(t, info.ETAMinutes)
	})

	t.Run("unknown order propagates not found", func(t *testing.T) {
		assignments := new(MockAssignmentRepository)
		assignments.On("GetByOrderNo", ctx, 99).
			Return(nil, errs.NewObjectNotFoundError("delivery for order 99", nil))
		positions := new(MockPositionRepository)

		handler, err := queries.NewGetDeliveryInfoQueryHandler(assignments, newVehicleCache(t, positions))
		require.NoError(t, err)

		query, err := queries.NewGetDeliveryInfoQuery(99)
		require.NoError(t, err)

		_, err = handler.Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("non-positive order number is rejected at construction", func(t *testing.T) {
		_, err := queries.NewGetDeliveryInfoQuery(0)
		require.Error(t, err)
	})
}

func TestGetActiveDeliveriesQueryHandler_Handle(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("returns one entry per active assignment", func(t *testing.T) {
		first := mustAssignment(t, 3, "truck-1", mustPoint(t, 13.7563, 100.5018), 4.2)
		second := mustAssignment(t, 4, "truck-2", mustPoint(t, 13.76, 100.51), 2.8)
		require.NoError(t, second.Transition(delivery.Delivering, now))

		assignments := new(MockAssignmentRepository)
		assignments.On("GetActive", ctx).Return([]*delivery.Assignment{first, second}, nil)
		positions := new(MockPositionRepository)
		positions.On("LoadAll", ctx).Return([]vehicle.Vehicle{
			observation(t, "truck-1", 13.75, 100.50, 20, now),
		}, nil)

		handler, err := queries.NewGetActiveDeliveriesQueryHandler(assignments, newVehicleCache(t, positions))
		require.NoError(t, err)

		active, err := handler.Handle(ctx, queries.GetActiveDeliveriesQuery{})

		require.NoError(t, err)
		require.Len(t, active, 2)
		assert.Equal(t, 3, active[0].OrderNo)
		assert.NotNil(t, active[0].Vehicle)
		assert.Equal(t, "delivering", active[1].Status)
		assert.Nil(t, active[1].Vehicle)
	})

	t.Run("no active deliveries yields empty slice", func(t *testing.T) {
		assignments := new(MockAssignmentRepository)
		assignments.On("GetActive", ctx).Return([]*delivery.Assignment{}, nil)
		positions := new(MockPositionRepository)

		handler, err := queries.NewGetActiveDeliveriesQueryHandler(assignments, newVehicleCache(t, positions))
		require.NoError(t, err)

		active, err := handler.Handle(ctx, queries.GetActiveDeliveriesQuery{})

		require.NoError(t, err)
		assert.Empty(t, active)
	})
}
