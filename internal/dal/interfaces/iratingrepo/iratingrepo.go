package iratingrepo

import (
	"context"

	"github.com/gebeta/delivery/internal/service/models/rating"
)

// IRatingRepository defines restaurant and menu rating persistence.
type IRatingRepository interface {
	InsertRestaurantRating(ctx context.Context, r rating.RestaurantRating) (rating.RestaurantRating, error)
	ListRestaurantRatings(ctx context.Context, restaurantID int64) ([]rating.RestaurantRating, error)

	InsertMenuRating(ctx context.Context, r rating.MenuRating) (rating.MenuRating, error)
	ListMenuRatings(ctx context.Context, menuItemID int64) ([]rating.MenuRating, error)
}
