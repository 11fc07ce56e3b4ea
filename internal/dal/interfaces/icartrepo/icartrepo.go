package icartrepo

import (
	"context"

	"github.com/gebeta/delivery/internal/service/models/cartline"
)

// ICartRepository defines cart line persistence. List and ListForUpdate
// resolve each line's menu item together with its restaurant.
type ICartRepository interface {
	// Insert creates a new cart line and returns it with its id.
	Insert(ctx context.Context, line cartline.CartLine) (cartline.CartLine, error)

	// GetByID returns a single cart line scoped to its owner.
	GetByID(ctx context.Context, userID string, id int64) (cartline.CartLine, error)

	// GetByMenuItem returns the line for a (user, menu item) pair, if any.
	GetByMenuItem(ctx context.Context, userID string, menuItemID int64) (cartline.CartLine, error)

	// List returns all of a user's cart lines in insertion order.
	List(ctx context.Context, userID string) ([]cartline.CartLine, error)

	// ListForUpdate is List with row locks on the cart lines. Only valid
	// inside a transaction; it serializes concurrent checkouts on the same
	// cart.
	ListForUpdate(ctx context.Context, userID string) ([]cartline.CartLine, error)

	// UpdateQuantity sets the quantity of a line.
	UpdateQuantity(ctx context.Context, id int64, quantity int) error

	// Delete removes a single line.
	Delete(ctx context.Context, id int64) error

	// DeleteByIDs removes exactly the given lines in one statement.
	DeleteByIDs(ctx context.Context, ids []int64) error

	// DeleteForUser removes every line a user owns.
	DeleteForUser(ctx context.Context, userID string) error
}
