package icatalogrepo

import (
	"context"

	"github.com/gebeta/delivery/internal/service/models/category"
	"github.com/gebeta/delivery/internal/service/models/menuitem"
	"github.com/gebeta/delivery/internal/service/models/promo"
	"github.com/gebeta/delivery/internal/service/models/restaurant"
)

// ICatalogRepository defines read/write access to restaurants, menus,
// categories and promos.
type ICatalogRepository interface {
	ListRestaurants(ctx context.Context) ([]restaurant.Restaurant, error)
	GetRestaurant(ctx context.Context, id int64) (restaurant.Restaurant, error)
	InsertRestaurant(ctx context.Context, r restaurant.Restaurant) (restaurant.Restaurant, error)
	UpdateRestaurant(ctx context.Context, id int64, upd restaurant.Update) (restaurant.Restaurant, error)

	ListMenuItems(ctx context.Context, restaurantID int64) ([]menuitem.MenuItem, error)
	GetMenuItem(ctx context.Context, id int64) (menuitem.MenuItem, error)
	InsertMenuItem(ctx context.Context, m menuitem.MenuItem) (menuitem.MenuItem, error)
	UpdateMenuItemPrice(ctx context.Context, id int64, price int64) error
	SetMenuItemAvailability(ctx context.Context, id int64, available bool) error

	ListCategories(ctx context.Context) ([]category.Category, error)

	ListActivePromos(ctx context.Context) ([]promo.Promo, error)
	InsertPromo(ctx context.Context, p promo.Promo) (promo.Promo, error)
}
