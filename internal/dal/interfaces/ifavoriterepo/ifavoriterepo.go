package ifavoriterepo

import (
	"context"

	"github.com/gebeta/delivery/internal/service/models/favorite"
)

// IFavoriteRepository defines favorite persistence.
type IFavoriteRepository interface {
	// GetByMenuItem returns the favorite for a (user, menu item) pair, if any.
	GetByMenuItem(ctx context.Context, userID string, menuItemID int64) (favorite.Favorite, error)

	// Insert creates a favorite and returns it with its id.
	Insert(ctx context.Context, f favorite.Favorite) (favorite.Favorite, error)

	// List returns a user's favorites with menu items resolved.
	List(ctx context.Context, userID string) ([]favorite.Favorite, error)

	// Delete removes a favorite scoped to its owner.
	Delete(ctx context.Context, userID string, id int64) error
}
