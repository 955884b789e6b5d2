package commands_test

import (
	"context"
	"testing"

	"dispatch/internal/core/application/caches"
	"dispatch/internal/core/application/parsing"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/domain/model/inbox"
	"dispatch/internal/core/domain/model/intent"
	"dispatch/internal/core/domain/model/stock"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockInterpreter struct{ mock.Mock }

func (m *MockInterpreter) Interpret(ctx context.Context, text string) ([]parsing.Candidate, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]parsing.Candidate), args.Error(1)
}

type MockOrderCreator struct{ mock.Mock }

func (m *MockOrderCreator) Handle(ctx context.Context, cmd commands.CreateOrderCommand,
) (commands.OrderReceipt, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.OrderReceipt), args.Error(1)
}

type MockPaymentUpdater struct{ mock.Mock }

func (m *MockPaymentUpdater) Handle(ctx context.Context, cmd commands.UpdatePaymentStatusCommand,
) (ports.PaymentUpdate, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(ports.PaymentUpdate), args.Error(1)
}

type MockOrderCanceler struct{ mock.Mock }

func (m *MockOrderCanceler) Handle(ctx context.Context, cmd commands.CancelOrderCommand,
) (commands.CancelResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.CancelResult), args.Error(1)
}

type MockDeliveryDispatcher struct{ mock.Mock }

func (m *MockDeliveryDispatcher) Handle(ctx context.Context, cmd commands.AssignDeliveryCommand,
) (commands.DispatchResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.DispatchResult), args.Error(1)
}

type messageFixture struct {
	inboxRepo   *MockInboxRepository
	interpreter *MockInterpreter
	creator     *MockOrderCreator
	payments    *MockPaymentUpdater
	canceler    *MockOrderCanceler
	dispatcher  *MockDeliveryDispatcher
	customers   *MockCustomerRepository
}

func newMessageHandler(t *testing.T, f *messageFixture, maxValue float64,
	autoAssign bool,
) commands.ProcessMessageCommandHandler {
	t.Helper()

	customerCache, err := caches.NewCustomerCache(f.customers)
	require.NoError(t, err)

	handler, err := commands.NewProcessMessageCommandHandler(f.inboxRepo, f.interpreter,
		f.creator, f.payments, f.canceler, f.dispatcher, customerCache,
		maxValue, autoAssign, nil)
	require.NoError(t, err)
	return handler
}

func newMessageFixture() *messageFixture {
	return &messageFixture{
		inboxRepo:   &MockInboxRepository{},
		interpreter: &MockInterpreter{},
		creator:     &MockOrderCreator{},
		payments:    &MockPaymentUpdater{},
		canceler:    &MockOrderCanceler{},
		dispatcher:  &MockDeliveryDispatcher{},
		customers:   &MockCustomerRepository{},
	}
}

func orderCandidate(t *testing.T, confidence intent.Confidence, quantity int) parsing.Candidate {
	t.Helper()
	ice := mustItem(t, "ice", "bag", 20, 100, 2)
	return parsing.Candidate{
		Intent: intent.OrderIntent{
			Customer:   "somchai",
			Items:      []intent.ItemRef{{StockIndex: 0, Quantity: quantity}},
			Confidence: confidence,
		},
		Items:   []parsing.MappedItem{{Item: ice, Quantity: quantity, Match: intent.Exact}},
		RawText: "somchai ice 20 5",
	}
}

func TestProcessMessageCommandHandler_AutoCommitsHighConfidenceOrder(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture()

	f.inboxRepo.On("Append", ctx, mock.MatchedBy(func(msg inbox.Message) bool {
		return msg.Text() == "somchai ice 20 5" && msg.UserID() == "user-1"
	})).Return(nil).Once()
	f.interpreter.On("Interpret", ctx, "somchai ice 20 5").
		Return([]parsing.Candidate{orderCandidate(t, intent.High, 5)}, nil).Once()
	f.creator.On("Handle", ctx, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		return cmd.Customer() == "somchai" && len(cmd.Lines()) == 1
	})).Return(commands.OrderReceipt{OrderNo: 9, Customer: "somchai", TotalAmount: 100}, nil).Once()

	handler := newMessageHandler(t, f, 5000, false)

	cmd, err := commands.NewProcessMessageCommand("user-1", "somchai ice 20 5")
	require.NoError(t, err)

	result, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 1)
	assert.True(t, result.Outcomes[0].Committed)
	require.NotNil(t, result.Outcomes[0].Receipt)
	assert.Equal(t, 9, result.Outcomes[0].Receipt.OrderNo)
	assert.NotEqual(t, "", result.MessageID.String())

	f.inboxRepo.AssertExpectations(t)
	f.interpreter.AssertExpectations(t)
	f.creator.AssertExpectations(t)
}

func TestProcessMessageCommandHandler_HoldsMediumConfidenceForConfirmation(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture()

	f.inboxRepo.On("Append", ctx, mock.Anything).Return(nil).Once()
	f.interpreter.On("Interpret", ctx, mock.Anything).
		Return([]parsing.Candidate{orderCandidate(t, intent.Medium, 5)}, nil).Once()

	handler := newMessageHandler(t, f, 5000, false)

	cmd, err := commands.NewProcessMessageCommand("user-1", "somchai ice 20 5")
	require.NoError(t, err)

	result, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 1)
	assert.False(t, result.Outcomes[0].Committed)
	assert.Nil(t, result.Outcomes[0].Receipt)

	f.creator.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestProcessMessageCommandHandler_HoldsExpensiveOrderForConfirmation(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture()

	f.inboxRepo.On("Append", ctx, mock.Anything).Return(nil).Once()
	f.interpreter.On("Interpret", ctx, mock.Anything).
		Return([]parsing.Candidate{orderCandidate(t, intent.High, 50)}, nil).Once()

	// 50 bags at 20 = 1000, over the 500 ceiling
	handler := newMessageHandler(t, f, 500, false)

	cmd, err := commands.NewProcessMessageCommand("user-1", "somchai ice 20 50")
	require.NoError(t, err)

	result, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, result.Outcomes[0].Committed)

	f.creator.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestProcessMessageCommandHandler_BlocksInsufficientStock(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture()

	f.inboxRepo.On("Append", ctx, mock.Anything).Return(nil).Once()
	f.interpreter.On("Interpret", ctx, mock.Anything).
		Return([]parsing.Candidate{orderCandidate(t, intent.High, 500)}, nil).Once()

	handler := newMessageHandler(t, f, 1000000, false)

	cmd, err := commands.NewProcessMessageCommand("user-1", "somchai ice 20 500")
	require.NoError(t, err)

	result, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 1)
	assert.True(t, result.Outcomes[0].Blocked)
	require.Len(t, result.Outcomes[0].Alerts, 1)
	assert.False(t, result.Outcomes[0].Alerts[0].CanProceed)
	assert.Equal(t, stock.WarningCritical, result.Outcomes[0].Alerts[0].Level)

	f.creator.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestProcessMessageCommandHandler_AutoAssignsWhenCustomerHasCoordinates(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture()

	location, err := geo.NewPoint(13.70, 100.50)
	require.NoError(t, err)
	somchai, err := customer.NewCustomer("Somchai Shop", &location)
	require.NoError(t, err)

	f.inboxRepo.On("Append", ctx, mock.Anything).Return(nil).Once()
	f.interpreter.On("Interpret", ctx, mock.Anything).
		Return([]parsing.Candidate{orderCandidate(t, intent.High, 5)}, nil).Once()
	f.creator.On("Handle", ctx, mock.Anything).
		Return(commands.OrderReceipt{OrderNo: 9, Customer: "somchai", TotalAmount: 100}, nil).Once()
	f.customers.On("LoadAll", ctx).Return([]customer.Customer{somchai}, nil).Once()
	f.dispatcher.On("Handle", ctx, mock.MatchedBy(func(cmd commands.AssignDeliveryCommand) bool {
		return cmd.OrderNo() == 9
	})).Return(commands.DispatchResult{OrderNo: 9, VehicleID: "truck-1", ETAMinutes: 4}, nil).Once()

	handler := newMessageHandler(t, f, 5000, true)

	cmd, err := commands.NewProcessMessageCommand("user-1", "somchai ice 20 5")
	require.NoError(t, err)

	result, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, result.Outcomes[0].Dispatch)
	assert.Equal(t, "truck-1", result.Outcomes[0].Dispatch.VehicleID)

	f.dispatcher.AssertExpectations(t)
}

func TestProcessMessageCommandHandler_AssignFailureDoesNotFailOrder(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture()

	location, err := geo.NewPoint(13.70, 100.50)
	require.NoError(t, err)
	somchai, err := customer.NewCustomer("Somchai Shop", &location)
	require.NoError(t, err)

	f.inboxRepo.On("Append", ctx, mock.Anything).Return(nil).Once()
	f.interpreter.On("Interpret", ctx, mock.Anything).
		Return([]parsing.Candidate{orderCandidate(t, intent.High, 5)}, nil).Once()
	f.creator.On("Handle", ctx, mock.Anything).
		Return(commands.OrderReceipt{OrderNo: 9, Customer: "somchai", TotalAmount: 100}, nil).Once()
	f.customers.On("LoadAll", ctx).Return([]customer.Customer{somchai}, nil).Once()
	f.dispatcher.On("Handle", ctx, mock.Anything).
		Return(commands.DispatchResult{}, errs.NewObjectNotFoundError("vehicle", "none")).Once()

	handler := newMessageHandler(t, f, 5000, true)

	cmd, err := commands.NewProcessMessageCommand("user-1", "somchai ice 20 5")
	require.NoError(t, err)

	result, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, result.Outcomes[0].Committed)
	assert.Nil(t, result.Outcomes[0].Dispatch)
}

func TestProcessMessageCommandHandler_PaymentAndCancelIntents(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture()

	f.inboxRepo.On("Append", ctx, mock.Anything).Return(nil).Once()
	f.interpreter.On("Interpret", ctx, mock.Anything).Return([]parsing.Candidate{
		{Intent: intent.PaymentIntent{Customer: "somchai", Confidence: intent.High}},
		{Intent: intent.CancelIntent{Customer: "malee", Confidence: intent.High}},
	}, nil).Once()
	f.payments.On("Handle", ctx, mock.Anything).
		Return(ports.PaymentUpdate{OrderNo: 21, Customer: "somchai", TotalAmount: 340}, nil).Once()
	f.canceler.On("Handle", ctx, mock.Anything).
		Return(commands.CancelResult{OrderNo: 22, RowsRemoved: 2}, nil).Once()

	handler := newMessageHandler(t, f, 5000, false)

	cmd, err := commands.NewProcessMessageCommand("user-1", "somchai paid, cancel malee")
	require.NoError(t, err)

	result, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 2)
	assert.Equal(t, "payment", result.Outcomes[0].Kind)
	require.NotNil(t, result.Outcomes[0].Payment)
	assert.Equal(t, "cancel", result.Outcomes[1].Kind)
	require.NotNil(t, result.Outcomes[1].Cancel)

	f.payments.AssertExpectations(t)
	f.canceler.AssertExpectations(t)
}

func TestProcessMessageCommandHandler_InterpreterFailurePropagates(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture()

	f.inboxRepo.On("Append", ctx, mock.Anything).Return(nil).Once()
	f.interpreter.On("Interpret", ctx, mock.Anything).
		Return(nil, errs.NewExternalServiceError("generator", nil)).Once()

	handler := newMessageHandler(t, f, 5000, false)

	cmd, err := commands.NewProcessMessageCommand("user-1", "gibberish")
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)
	assert.ErrorIs(t, err, errs.ErrExternalService)
}
