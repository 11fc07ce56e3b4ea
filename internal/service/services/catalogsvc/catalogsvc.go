package catalogsvc

import (
	"context"
	"strings"

	"github.com/gebeta/delivery/internal/dal/interfaces/icatalogrepo"
	"github.com/gebeta/delivery/internal/dal/postgres"
	postgresrepo "github.com/gebeta/delivery/internal/dal/repositories/catalog/postgres"
	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/gebeta/delivery/internal/service/models/category"
	"github.com/gebeta/delivery/internal/service/models/menuitem"
	"github.com/gebeta/delivery/internal/service/models/promo"
	"github.com/gebeta/delivery/internal/service/models/restaurant"
)

// CatalogService serves restaurants, menus, categories and promos.
type CatalogService struct {
	catalogRepo icatalogrepo.ICatalogRepository
}

// option is a function that configures the CatalogService.
type option func(*CatalogService)

// MustNewCatalogService creates a new CatalogService.
func MustNewCatalogService(opts ...option) *CatalogService {
	s := &CatalogService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient wires the default Postgres-backed catalog repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *CatalogService) {
		s.catalogRepo = postgresrepo.NewPostgresCatalogRepository(pgClient.Pool())
	}
}

// WithCatalogRepository sets the catalog repository directly.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCatalogRepository(repo icatalogrepo.ICatalogRepository) option {
	return func(s *CatalogService) {
		s.catalogRepo = repo
	}
}

// ListRestaurants returns every restaurant.
func (s *CatalogService) ListRestaurants(ctx context.Context) ([]restaurant.Restaurant, error) {
	return s.catalogRepo.ListRestaurants(ctx)
}

// GetRestaurant returns one restaurant.
func (s *CatalogService) GetRestaurant(ctx context.Context, id int64) (restaurant.Restaurant, error) {
	return s.catalogRepo.GetRestaurant(ctx, id)
}

// CreateRestaurant registers a restaurant.
func (s *CatalogService) CreateRestaurant(ctx context.Context, r restaurant.Restaurant) (restaurant.Restaurant, error) {
	if strings.TrimSpace(r.Name) == "" {
		return restaurant.Restaurant{}, apperr.Validation("restaurant name must not be empty")
	}

	return s.catalogRepo.InsertRestaurant(ctx, r)
}

// UpdateRestaurant applies a partial update to a restaurant.
func (s *CatalogService) UpdateRestaurant(ctx context.Context, id int64, upd restaurant.Update) (restaurant.Restaurant, error) {
	if upd.Name == nil && upd.Image == nil && upd.Description == nil &&
		upd.Location == nil && upd.Latitude == nil && upd.Longitude == nil &&
		upd.OpeningHours == nil {
		return restaurant.Restaurant{}, apperr.Validation("nothing to update")
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return restaurant.Restaurant{}, apperr.Validation("restaurant name must not be empty")
	}

	return s.catalogRepo.UpdateRestaurant(ctx, id, upd)
}

// ListMenu returns a restaurant's menu items.
func (s *CatalogService) ListMenu(ctx context.Context, restaurantID int64) ([]menuitem.MenuItem, error) {
	return s.catalogRepo.ListMenuItems(ctx, restaurantID)
}

// GetMenuItem returns one menu item with its restaurant resolved.
func (s *CatalogService) GetMenuItem(ctx context.Context, id int64) (menuitem.MenuItem, error) {
	return s.catalogRepo.GetMenuItem(ctx, id)
}

// CreateMenuItem adds an item to a restaurant's menu.
func (s *CatalogService) CreateMenuItem(ctx context.Context, m menuitem.MenuItem) (menuitem.MenuItem, error) {
	if strings.TrimSpace(m.Name) == "" {
		return menuitem.MenuItem{}, apperr.Validation("menu item name must not be empty")
	}
	if m.Price < 0 {
		return menuitem.MenuItem{}, apperr.Validation("menu item price must not be negative")
	}

	return s.catalogRepo.InsertMenuItem(ctx, m)
}

// UpdateMenuItemPrice changes an item's live price. Existing orders keep
// the price they were placed at.
func (s *CatalogService) UpdateMenuItemPrice(ctx context.Context, id int64, price int64) error {
	if price < 0 {
		return apperr.Validation("menu item price must not be negative")
	}

	return s.catalogRepo.UpdateMenuItemPrice(ctx, id, price)
}

// SetMenuItemAvailability toggles whether an item can be ordered.
func (s *CatalogService) SetMenuItemAvailability(ctx context.Context, id int64, available bool) error {
	return s.catalogRepo.SetMenuItemAvailability(ctx, id, available)
}

// ListCategories returns all menu categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]category.Category, error) {
	return s.catalogRepo.ListCategories(ctx)
}

// ListActivePromos returns promos currently running.
func (s *CatalogService) ListActivePromos(ctx context.Context) ([]promo.Promo, error) {
	return s.catalogRepo.ListActivePromos(ctx)
}

// CreatePromo registers a promo.
func (s *CatalogService) CreatePromo(ctx context.Context, p promo.Promo) (promo.Promo, error) {
	if strings.TrimSpace(p.Headline) == "" {
		return promo.Promo{}, apperr.Validation("promo headline must not be empty")
	}

	return s.catalogRepo.InsertPromo(ctx, p)
}
