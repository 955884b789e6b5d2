package parsing_test

import (
	"context"
	"encoding/json"
	"testing"

	"dispatch/internal/core/application/caches"
	"dispatch/internal/core/application/parsing"
	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/intent"
	"dispatch/internal/core/domain/model/stock"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTextGenerator struct{ mock.Mock }

func (m *MockTextGenerator) Complete(ctx context.Context, prompt string) (json.RawMessage, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

type stubStockRepository struct{ items []stock.Item }

func (s *stubStockRepository) LoadAll(ctx context.Context) ([]stock.Item, error) {
	return s.items, nil
}

func (s *stubStockRepository) WriteQuantity(ctx context.Context, item stock.Item) error {
	return nil
}

type stubCustomerRepository struct{ all []customer.Customer }

func (s *stubCustomerRepository) LoadAll(ctx context.Context) ([]customer.Customer, error) {
	return s.all, nil
}

func newInterpreterFixture(t *testing.T, generator *MockTextGenerator) *parsing.Interpreter {
	t.Helper()

	ice, err := stock.NewItem("ice", "bag", 20, 100, 2)
	require.NoError(t, err)
	coke, err := stock.NewItem("coke", "crate", 350, 10, 3)
	require.NoError(t, err)

	somchai, err := customer.NewCustomer("Somchai Shop", nil)
	require.NoError(t, err)

	stocks, err := caches.NewStockCache(&stubStockRepository{items: []stock.Item{ice, coke}})
	require.NoError(t, err)
	customers, err := caches.NewCustomerCache(&stubCustomerRepository{all: []customer.Customer{somchai}})
	require.NoError(t, err)

	interpreter, err := parsing.NewInterpreter(generator, stocks, customers)
	require.NoError(t, err)
	return interpreter
}

func TestInterpreter_OrderIntentMappedAndBoosted(t *testing.T) {
	ctx := context.Background()

	generator := &MockTextGenerator{}
	generator.On("Complete", ctx, mock.AnythingOfType("string")).
		Return(json.RawMessage(`[{"intent":"order","customer":"somchai",
			"items":[{"stockId":0,"quantity":5}],"isPaid":false,
			"deliveryPerson":"","confidence":"medium"}]`), nil).Once()

	interpreter := newInterpreterFixture(t, generator)

	candidates, err := interpreter.Interpret(ctx, "somchai ice 20 5")
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	order, ok := candidates[0].Intent.(intent.OrderIntent)
	require.True(t, ok)
	assert.Equal(t, "somchai", order.Customer)
	// medium with five backing signals is upgraded
	assert.Equal(t, intent.High, order.Confidence)
	require.Len(t, candidates[0].Items, 1)
	assert.Equal(t, "ice", candidates[0].Items[0].Item.Name())
	assert.Equal(t, 5, candidates[0].Items[0].Quantity)
	assert.Equal(t, intent.Exact, candidates[0].Items[0].Match)
	assert.InDelta(t, 100.0, candidates[0].OrderTotal(), 0.001)

	generator.AssertExpectations(t)
}

func TestInterpreter_InvalidStockIndexDropped(t *testing.T) {
	ctx := context.Background()

	generator := &MockTextGenerator{}
	generator.On("Complete", ctx, mock.AnythingOfType("string")).
		Return(json.RawMessage(`[{"intent":"order","customer":"",
			"items":[{"stockId":42,"quantity":2},{"stockId":1,"quantity":1}],
			"confidence":"medium"}]`), nil).Once()

	interpreter := newInterpreterFixture(t, generator)

	candidates, err := interpreter.Interpret(ctx, "a crate of coke")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Len(t, candidates[0].Items, 1)
	assert.Equal(t, "coke", candidates[0].Items[0].Item.Name())

	order := candidates[0].Intent.(intent.OrderIntent)
	assert.Equal(t, intent.UnspecifiedCustomer, order.Customer)

	generator.AssertExpectations(t)
}

func TestInterpreter_MissingQuantityDefaultsToOne(t *testing.T) {
	ctx := context.Background()

	generator := &MockTextGenerator{}
	generator.On("Complete", ctx, mock.AnythingOfType("string")).
		Return(json.RawMessage(`[{"intent":"order","customer":"somchai",
			"items":[{"stockId":0}],"confidence":"low"}]`), nil).Once()

	interpreter := newInterpreterFixture(t, generator)

	candidates, err := interpreter.Interpret(ctx, "ice for somchai")
	require.NoError(t, err)
	require.Len(t, candidates[0].Items, 1)
	assert.Equal(t, 1, candidates[0].Items[0].Quantity)

	generator.AssertExpectations(t)
}

func TestInterpreter_MultipleIntentsInOneMessage(t *testing.T) {
	ctx := context.Background()

	generator := &MockTextGenerator{}
	generator.On("Complete", ctx, mock.AnythingOfType("string")).
		Return(json.RawMessage(`[
			{"intent":"order","customer":"somchai","items":[{"stockId":0,"quantity":2}],"confidence":"high"},
			{"intent":"payment","customer":"malee","confidence":"medium"}
		]`), nil).Once()

	interpreter := newInterpreterFixture(t, generator)

	candidates, err := interpreter.Interpret(ctx, "somchai 2 ice, malee paid")
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	_, isOrder := candidates[0].Intent.(intent.OrderIntent)
	assert.True(t, isOrder)
	payment, isPayment := candidates[1].Intent.(intent.PaymentIntent)
	require.True(t, isPayment)
	assert.Equal(t, "malee", payment.Customer)

	generator.AssertExpectations(t)
}

func TestInterpreter_SingleObjectAcceptedAsArray(t *testing.T) {
	ctx := context.Background()

	generator := &MockTextGenerator{}
	generator.On("Complete", ctx, mock.AnythingOfType("string")).
		Return(json.RawMessage(`{"intent":"cancel","customer":"somchai","confidence":"high"}`), nil).Once()

	interpreter := newInterpreterFixture(t, generator)

	candidates, err := interpreter.Interpret(ctx, "cancel somchai's order")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	_, isCancel := candidates[0].Intent.(intent.CancelIntent)
	assert.True(t, isCancel)

	generator.AssertExpectations(t)
}

func TestInterpreter_MalformedAnswerIsExternalServiceError(t *testing.T) {
	ctx := context.Background()

	generator := &MockTextGenerator{}
	generator.On("Complete", ctx, mock.AnythingOfType("string")).
		Return(json.RawMessage(`this is not json`), nil).Once()

	interpreter := newInterpreterFixture(t, generator)

	_, err := interpreter.Interpret(ctx, "ice 20 5")
	assert.ErrorIs(t, err, errs.ErrExternalService)

	generator.AssertExpectations(t)
}

func TestInterpreter_UnknownIntentKindIsExternalServiceError(t *testing.T) {
	ctx := context.Background()

	generator := &MockTextGenerator{}
	generator.On("Complete", ctx, mock.AnythingOfType("string")).
		Return(json.RawMessage(`[{"intent":"dance","customer":"somchai"}]`), nil).Once()

	interpreter := newInterpreterFixture(t, generator)

	_, err := interpreter.Interpret(ctx, "somchai dances")
	assert.ErrorIs(t, err, errs.ErrExternalService)

	generator.AssertExpectations(t)
}

func TestInterpreter_UnrecognizedConfidenceFallsBackToLow(t *testing.T) {
	ctx := context.Background()

	generator := &MockTextGenerator{}
	generator.On("Complete", ctx, mock.AnythingOfType("string")).
		Return(json.RawMessage(`[{"intent":"cancel","customer":"","confidence":"absolutely"}]`), nil).Once()

	interpreter := newInterpreterFixture(t, generator)

	candidates, err := interpreter.Interpret(ctx, "cancel it")
	require.NoError(t, err)
	cancel := candidates[0].Intent.(intent.CancelIntent)
	assert.Equal(t, intent.Low, cancel.Confidence)

	generator.AssertExpectations(t)
}

func TestInterpreter_EmptyTextRejected(t *testing.T) {
	interpreter := newInterpreterFixture(t, &MockTextGenerator{})
	_, err := interpreter.Interpret(context.Background(), "   ")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestInterpreter_PromptCarriesCatalogAndCustomers(t *testing.T) {
	ctx := context.Background()

	var prompt string
	generator := &MockTextGenerator{}
	generator.On("Complete", ctx, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { prompt = args.String(1) }).
		Return(json.RawMessage(`[]`), nil).Once()

	interpreter := newInterpreterFixture(t, generator)

	_, err := interpreter.Interpret(ctx, "ice 20 5")
	require.NoError(t, err)
	assert.Contains(t, prompt, "ID:0 |")
	assert.Contains(t, prompt, "Somchai Shop")
	assert.Contains(t, prompt, `"ice 20 5"`)

	generator.AssertExpectations(t)
}
