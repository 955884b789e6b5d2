package commands

import (
	"context"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// UpdatePaymentStatusCommandHandler settles payment for an order. Every row
// of a multi-line order is updated.
type UpdatePaymentStatusCommandHandler struct {
	orders ports.OrderRepository
}

// NewUpdatePaymentStatusCommandHandler creates a handler for payment updates.
func NewUpdatePaymentStatusCommandHandler(orders ports.OrderRepository,
) (UpdatePaymentStatusCommandHandler, error) {
	if orders == nil {
		return UpdatePaymentStatusCommandHandler{}, errs.NewValueIsRequiredError("orders")
	}
	return UpdatePaymentStatusCommandHandler{orders: orders}, nil
}

// Handle processes the payment update. With OrderNo zero it resolves the most
// recent order first; no orders at all is an ObjectNotFoundError.
func (h *UpdatePaymentStatusCommandHandler) Handle(ctx context.Context,
	cmd UpdatePaymentStatusCommand,
) (ports.PaymentUpdate, error) {
	if err := cmd.Validate(); err != nil {
		return ports.PaymentUpdate{}, err
	}

	orderNo := cmd.OrderNo()
	if orderNo == 0 {
		last, err := h.orders.LastOrderNumber(ctx)
		if err != nil {
			return ports.PaymentUpdate{}, err
		}
		if last == 0 {
			return ports.PaymentUpdate{}, errs.NewObjectNotFoundError("order", "latest")
		}
		orderNo = last
	}

	return h.orders.UpdatePaymentStatus(ctx, orderNo, cmd.Status())
}
