package favoritesvc

import (
	"context"

	"github.com/gebeta/delivery/internal/dal/interfaces/ifavoriterepo"
	"github.com/gebeta/delivery/internal/dal/postgres"
	postgresrepo "github.com/gebeta/delivery/internal/dal/repositories/favorite/postgres"
	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/gebeta/delivery/internal/service/models/favorite"
)

// FavoriteService manages a user's favorite menu items.
type FavoriteService struct {
	favoriteRepo ifavoriterepo.IFavoriteRepository
}

// option is a function that configures the FavoriteService.
type option func(*FavoriteService)

// MustNewFavoriteService creates a new FavoriteService.
func MustNewFavoriteService(opts ...option) *FavoriteService {
	s := &FavoriteService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient wires the default Postgres-backed favorite repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *FavoriteService) {
		s.favoriteRepo = postgresrepo.NewPostgresFavoriteRepository(pgClient.Pool())
	}
}

// WithFavoriteRepository sets the favorite repository directly.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithFavoriteRepository(repo ifavoriterepo.IFavoriteRepository) option {
	return func(s *FavoriteService) {
		s.favoriteRepo = repo
	}
}

// Add favorites a menu item for the user. Favoriting the same item twice is
// a conflict.
func (s *FavoriteService) Add(ctx context.Context, userID string, menuItemID int64) (favorite.Favorite, error) {
	_, err := s.favoriteRepo.GetByMenuItem(ctx, userID, menuItemID)
	switch {
	case err == nil:
		return favorite.Favorite{}, apperr.Conflict("this item is already in your favorites")
	case !apperr.IsNotFound(err):
		return favorite.Favorite{}, err
	}

	return s.favoriteRepo.Insert(ctx, favorite.Favorite{
		UserID:     userID,
		MenuItemID: menuItemID,
	})
}

// List returns the user's favorites with menu items resolved.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]favorite.Favorite, error) {
	return s.favoriteRepo.List(ctx, userID)
}

// Remove deletes one favorite scoped to its owner.
func (s *FavoriteService) Remove(ctx context.Context, userID string, id int64) error {
	return s.favoriteRepo.Delete(ctx, userID, id)
}
