package iorderitemrepo

import (
	"context"

	"github.com/gebeta/delivery/internal/service/models/orderitem"
)

// IOrderItemRepository defines order item persistence. Items are written
// once, atomically with their parent order, and never mutated.
type IOrderItemRepository interface {
	// BulkInsert inserts the items and returns them with generated ids.
	BulkInsert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error)

	// ListByOrderIDs returns all items belonging to the given orders.
	ListByOrderIDs(ctx context.Context, orderIDs []int64) ([]orderitem.OrderItem, error)
}
