package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/caches"
	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/domain/model/inbox"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/stock"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStockRepository struct{ mock.Mock }

func (m *MockStockRepository) LoadAll(ctx context.Context) ([]stock.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]stock.Item), args.Error(1)
}

func (m *MockStockRepository) WriteQuantity(ctx context.Context, item stock.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) LastOrderNumber(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) AppendOrder(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, orderNo int) ([]ports.OrderLine, error) {
	args := m.Called(ctx, orderNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OrderLine), args.Error(1)
}

func (m *MockOrderRepository) UpdatePaymentStatus(ctx context.Context, orderNo int,
	status order.PaymentStatus,
) (ports.PaymentUpdate, error) {
	args := m.Called(ctx, orderNo, status)
	return args.Get(0).(ports.PaymentUpdate), args.Error(1)
}

func (m *MockOrderRepository) DeleteOrder(ctx context.Context, orderNo int) (int, error) {
	args := m.Called(ctx, orderNo)
	return args.Int(0), args.Error(1)
}

type MockPositionRepository struct{ mock.Mock }

func (m *MockPositionRepository) LoadAll(ctx context.Context) ([]vehicle.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]vehicle.Vehicle), args.Error(1)
}

func (m *MockPositionRepository) Append(ctx context.Context, observation vehicle.Vehicle) error {
	args := m.Called(ctx, observation)
	return args.Error(0)
}

func (m *MockPositionRepository) CleanupBefore(ctx context.Context, cutoff time.Time) (int, error) {
	args := m.Called(ctx, cutoff)
	return args.Int(0), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, aggregate *delivery.Assignment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetByOrderNo(ctx context.Context, orderNo int) (*delivery.Assignment, error) {
	args := m.Called(ctx, orderNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, aggregate *delivery.Assignment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetActive(ctx context.Context) ([]*delivery.Assignment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Assignment), args.Error(1)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) LoadAll(ctx context.Context) ([]customer.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.Customer), args.Error(1)
}

type MockInboxRepository struct{ mock.Mock }

func (m *MockInboxRepository) Append(ctx context.Context, message inbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func mustPoint(t *testing.T, lat, lng float64) geo.Point {
	t.Helper()
	p, err := geo.NewPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func mustItem(t *testing.T, name, unit string, price float64, quantity, row int) stock.Item {
	t.Helper()
	item, err := stock.NewItem(name, unit, price, quantity, row)
	require.NoError(t, err)
	return item
}

func mustVehicle(t *testing.T, id string, lat, lng, speed float64) vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.NewVehicle(id, mustPoint(t, lat, lng), speed, 0, "driver", "", time.Now())
	require.NoError(t, err)
	return v
}

func newVehicleCache(t *testing.T, repo *MockPositionRepository) *caches.VehicleCache {
	t.Helper()
	cache, err := caches.NewVehicleCache(repo, time.Minute)
	require.NoError(t, err)
	return cache
}

func newStockCache(t *testing.T, repo *MockStockRepository) *caches.StockCache {
	t.Helper()
	cache, err := caches.NewStockCache(repo)
	require.NoError(t, err)
	return cache
}
