package iorderrepo

import (
	"context"

	"github.com/gebeta/delivery/internal/service/models/order"
)

// IOrderRepository defines order persistence.
type IOrderRepository interface {
	// BulkInsert inserts the orders and returns them with generated ids.
	BulkInsert(ctx context.Context, orders []order.Order) ([]order.Order, error)

	// GetByID returns one order without its items.
	GetByID(ctx context.Context, id int64) (order.Order, error)

	// Query returns orders matching the filter, newest first.
	Query(ctx context.Context, filter *order.Query) ([]order.Order, error)

	// Update applies the non-nil fields of upd to one order and returns the
	// updated row.
	Update(ctx context.Context, id int64, upd order.Update) (order.Order, error)

	// Delete hard-deletes an order. Not part of the core lifecycle.
	Delete(ctx context.Context, id int64) error
}
