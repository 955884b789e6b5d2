package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/caches"
	"dispatch/internal/core/application/parsing"
	"dispatch/internal/core/domain/model/inbox"
	"dispatch/internal/core/domain/model/intent"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/stock"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

// MessageInterpreter reads one free-text message into candidates.
type MessageInterpreter interface {
	Interpret(ctx context.Context, text string) ([]parsing.Candidate, error)
}

// OrderCreator commits an interpreted order.
type OrderCreator interface {
	Handle(ctx context.Context, cmd CreateOrderCommand) (OrderReceipt, error)
}

// PaymentUpdater settles payment for an order.
type PaymentUpdater interface {
	Handle(ctx context.Context, cmd UpdatePaymentStatusCommand) (ports.PaymentUpdate, error)
}

// OrderCanceler cancels an order and restores its stock.
type OrderCanceler interface {
	Handle(ctx context.Context, cmd CancelOrderCommand) (CancelResult, error)
}

// DeliveryDispatcher dispatches a vehicle for an order.
type DeliveryDispatcher interface {
	Handle(ctx context.Context, cmd AssignDeliveryCommand) (DispatchResult, error)
}

// StockAlert flags an order line that strains stock.
type StockAlert struct {
	Product    string
	Remaining  int
	Level      stock.Warning
	CanProceed bool
}

// MessageOutcome is what processing one candidate produced. Exactly one of
// Receipt, Payment and Cancel is set for committed outcomes; none is set when
// the candidate was blocked or held for confirmation.
type MessageOutcome struct {
	Kind       string
	Confidence intent.Confidence
	Alerts     []StockAlert
	Blocked    bool
	Committed  bool
	Receipt    *OrderReceipt
	Dispatch   *DispatchResult
	Payment    *ports.PaymentUpdate
	Cancel     *CancelResult
}

// ProcessMessageResult reports all outcomes for one message.
type ProcessMessageResult struct {
	MessageID uuid.UUID
	Outcomes  []MessageOutcome
}

// ProcessMessageCommandHandler runs the full message flow: record the raw
// message in the inbox, interpret it, and act on each candidate. Orders are
// committed only when confidence is high and the order value stays within
// the auto-process maximum; everything else is returned for confirmation.
type ProcessMessageCommandHandler struct {
	inboxRepo   ports.InboxRepository
	interpreter MessageInterpreter
	creator     OrderCreator
	payments    PaymentUpdater
	canceler    OrderCanceler
	dispatcher  DeliveryDispatcher
	customers   *caches.CustomerCache

	autoProcessMaxValue float64
	autoAssignDelivery  bool

	log *slog.Logger
}

// NewProcessMessageCommandHandler creates the message flow handler.
func NewProcessMessageCommandHandler(inboxRepo ports.InboxRepository,
	interpreter MessageInterpreter, creator OrderCreator, payments PaymentUpdater,
	canceler OrderCanceler, dispatcher DeliveryDispatcher, customers *caches.CustomerCache,
	autoProcessMaxValue float64, autoAssignDelivery bool, log *slog.Logger,
) (ProcessMessageCommandHandler, error) {
	if inboxRepo == nil {
		return ProcessMessageCommandHandler{}, errs.NewValueIsRequiredError("inboxRepo")
	}
	if interpreter == nil {
		return ProcessMessageCommandHandler{}, errs.NewValueIsRequiredError("interpreter")
	}
	if creator == nil {
		return ProcessMessageCommandHandler{}, errs.NewValueIsRequiredError("creator")
	}
	if payments == nil {
		return ProcessMessageCommandHandler{}, errs.NewValueIsRequiredError("payments")
	}
	if canceler == nil {
		return ProcessMessageCommandHandler{}, errs.NewValueIsRequiredError("canceler")
	}
	if dispatcher == nil {
		return ProcessMessageCommandHandler{}, errs.NewValueIsRequiredError("dispatcher")
	}
	if customers == nil {
		return ProcessMessageCommandHandler{}, errs.NewValueIsRequiredError("customers")
	}
	if autoProcessMaxValue < 0 {
		return ProcessMessageCommandHandler{}, errs.NewValueIsInvalidError("autoProcessMaxValue")
	}
	if log == nil {
		log = slog.Default()
	}

	return ProcessMessageCommandHandler{
		inboxRepo:           inboxRepo,
		interpreter:         interpreter,
		creator:             creator,
		payments:            payments,
		canceler:            canceler,
		dispatcher:          dispatcher,
		customers:           customers,
		autoProcessMaxValue: autoProcessMaxValue,
		autoAssignDelivery:  autoAssignDelivery,
		log:                 log,
	}, nil
}

// Handle processes one message end to end.
func (h *ProcessMessageCommandHandler) Handle(ctx context.Context, cmd ProcessMessageCommand,
) (ProcessMessageResult, error) {
	if err := cmd.Validate(); err != nil {
		return ProcessMessageResult{}, err
	}

	message, err := inbox.NewMessage(cmd.UserID(), cmd.Text(), time.Now())
	if err != nil {
		return ProcessMessageResult{}, err
	}
	if err := h.inboxRepo.Append(ctx, message); err != nil {
		return ProcessMessageResult{}, err
	}

	candidates, err := h.interpreter.Interpret(ctx, cmd.Text())
	if err != nil {
		return ProcessMessageResult{}, err
	}

	result := ProcessMessageResult{MessageID: message.ID()}
	for _, candidate := range candidates {
		outcome, err := h.processCandidate(ctx, candidate)
		if err != nil {
			return ProcessMessageResult{}, err
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}
	return result, nil
}

func (h *ProcessMessageCommandHandler) processCandidate(ctx context.Context,
	candidate parsing.Candidate,
) (MessageOutcome, error) {
	switch in := candidate.Intent.(type) {
	case intent.OrderIntent:
		return h.processOrder(ctx, candidate, in)

	case intent.PaymentIntent:
		cmd, err := NewUpdatePaymentStatusCommand(0, order.Paid)
		if err != nil {
			return MessageOutcome{}, err
		}
		update, err := h.payments.Handle(ctx, cmd)
		if err != nil {
			return MessageOutcome{}, err
		}
		return MessageOutcome{
			Kind:       "payment",
			Confidence: in.Confidence,
			Committed:  true,
			Payment:    &update,
		}, nil

	case intent.CancelIntent:
		cmd, err := NewCancelOrderCommand(0)
		if err != nil {
			return MessageOutcome{}, err
		}
		canceled, err := h.canceler.Handle(ctx, cmd)
		if err != nil {
			return MessageOutcome{}, err
		}
		return MessageOutcome{
			Kind:       "cancel",
			Confidence: in.Confidence,
			Committed:  true,
			Cancel:     &canceled,
		}, nil

	default:
		return MessageOutcome{}, errs.NewValueIsInvalidError("unsupported intent")
	}
}

func (h *ProcessMessageCommandHandler) processOrder(ctx context.Context,
	candidate parsing.Candidate, in intent.OrderIntent,
) (MessageOutcome, error) {
	outcome := MessageOutcome{Kind: "order", Confidence: in.Confidence}

	blocked := false
	for _, item := range candidate.Items {
		remaining := item.Item.Quantity() - item.Quantity
		if remaining < 0 {
			outcome.Alerts = append(outcome.Alerts, StockAlert{
				Product:    item.Item.Name(),
				Remaining:  item.Item.Quantity(),
				Level:      stock.WarningCritical,
				CanProceed: false,
			})
			blocked = true
			continue
		}
		if level := stock.WarningForRemaining(remaining); level != stock.WarningNone {
			outcome.Alerts = append(outcome.Alerts, StockAlert{
				Product:    item.Item.Name(),
				Remaining:  remaining,
				Level:      level,
				CanProceed: true,
			})
		}
	}
	if blocked {
		outcome.Blocked = true
		return outcome, nil
	}

	if in.Confidence != intent.High || candidate.OrderTotal() > h.autoProcessMaxValue {
		// Held for confirmation.
		return outcome, nil
	}

	paymentStatus := order.Unpaid
	if in.IsPaid {
		paymentStatus = order.Paid
	}

	lines := make([]LineRequest, 0, len(candidate.Items))
	for _, item := range candidate.Items {
		line, err := NewLineRequest(item.Item.Name(), item.Item.Unit(), item.Quantity)
		if err != nil {
			return MessageOutcome{}, err
		}
		lines = append(lines, line)
	}

	cmd, err := NewCreateOrderCommand(in.Customer, lines, paymentStatus, in.DeliveryPerson)
	if err != nil {
		return MessageOutcome{}, err
	}
	receipt, err := h.creator.Handle(ctx, cmd)
	if err != nil {
		return MessageOutcome{}, err
	}
	outcome.Committed = true
	outcome.Receipt = &receipt

	if h.autoAssignDelivery {
		outcome.Dispatch = h.tryAutoAssign(ctx, receipt)
	}

	return outcome, nil
}

// tryAutoAssign dispatches a delivery for a freshly committed order when the
// customer has known coordinates. Failure never fails the order.
func (h *ProcessMessageCommandHandler) tryAutoAssign(ctx context.Context,
	receipt OrderReceipt,
) *DispatchResult {
	known, err := h.customers.FindByName(ctx, receipt.Customer)
	if err != nil || known == nil || known.Location() == nil {
		return nil
	}

	cmd, err := NewAssignDeliveryCommand(receipt.OrderNo, *known.Location(), receipt.Customer)
	if err != nil {
		return nil
	}
	dispatched, err := h.dispatcher.Handle(ctx, cmd)
	if err != nil {
		h.log.Warn("auto-assign failed",
			slog.Int("orderNo", receipt.OrderNo), slog.Any("error", err))
		return nil
	}
	return &dispatched
}
