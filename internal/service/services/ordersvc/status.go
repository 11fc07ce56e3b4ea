package ordersvc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/gebeta/delivery/internal/service/models/order"
)

// UpdateOrder applies a partial update to an order. Status changes are
// validated against the lifecycle: forward moves along
// pending -> confirmed -> preparing -> out_for_delivery -> delivered,
// cancellation from any non-terminal status, no leaving a terminal status.
// Crossing into delivered fires the delivered notifications exactly once.
func (s *OrderService) UpdateOrder(ctx context.Context, id int64, upd order.Update) (order.Order, error) {
	if upd.DeliveryAddress != nil {
		if err := validateDeliveryAddress(*upd.DeliveryAddress); err != nil {
			return order.Order{}, err
		}
	}

	work := s.newUOW()

	existing, err := work.OrderRepository().GetByID(ctx, id)
	if err != nil {
		return order.Order{}, err
	}

	if upd.Status != nil && !existing.Status.CanTransitionTo(*upd.Status) {
		return order.Order{}, apperr.Conflict(
			"order %d cannot move from %s to %s", id, existing.Status, *upd.Status,
		)
	}

	updated, err := work.OrderRepository().Update(ctx, id, upd)
	if err != nil {
		return order.Order{}, err
	}

	if existing.Status != order.StatusDelivered && updated.Status == order.StatusDelivered {
		s.notifyDelivered(ctx, updated)
	}

	return updated, nil
}

// notifyDelivered sends the delivered push and in-app notification.
// Best effort: the status change is already durable, so failures are only
// logged.
func (s *OrderService) notifyDelivered(ctx context.Context, o order.Order) {
	if s.notifier == nil {
		return
	}

	if err := s.notifier.SendPush(ctx,
		o.UserID,
		"Order Delivered! 🎉",
		fmt.Sprintf("Your order #%d has been delivered successfully. Enjoy your meal!", o.ID),
		map[string]any{"orderId": o.ID, "type": "order_delivered"},
	); err != nil {
		slog.Error("Failed to send delivered push", "order_id", o.ID, "user_id", o.UserID, "error", err)
	}

	if _, err := s.notifier.Create(ctx, o.UserID,
		fmt.Sprintf("Your order #%d has been delivered!", o.ID),
	); err != nil {
		slog.Error("Failed to create delivered notification", "order_id", o.ID, "user_id", o.UserID, "error", err)
	}
}
