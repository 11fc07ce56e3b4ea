package favoritesvc

import (
	"context"
	"testing"

	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/gebeta/delivery/internal/service/models/favorite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFavoriteRepo struct {
	favorites []favorite.Favorite
	nextID    int64
}

func (f *fakeFavoriteRepo) GetByMenuItem(_ context.Context, userID string, menuItemID int64) (favorite.Favorite, error) {
	for _, fav := range f.favorites {
		if fav.UserID == userID && fav.MenuItemID == menuItemID {
			return fav, nil
		}
	}

	return favorite.Favorite{}, apperr.NotFound("favorite for menu item %d", menuItemID)
}

func (f *fakeFavoriteRepo) Insert(_ context.Context, fav favorite.Favorite) (favorite.Favorite, error) {
	f.nextID++
	fav.ID = f.nextID
	f.favorites = append(f.favorites, fav)

	return fav, nil
}

func (f *fakeFavoriteRepo) List(_ context.Context, userID string) ([]favorite.Favorite, error) {
	out := make([]favorite.Favorite, 0)
	for _, fav := range f.favorites {
		if fav.UserID == userID {
			out = append(out, fav)
		}
	}

	return out, nil
}

func (f *fakeFavoriteRepo) Delete(_ context.Context, userID string, id int64) error {
	for i, fav := range f.favorites {
		if fav.ID == id && fav.UserID == userID {
			f.favorites = append(f.favorites[:i], f.favorites[i+1:]...)

			return nil
		}
	}

	return apperr.NotFound("favorite %d", id)
}

func TestAddRejectsDuplicates(t *testing.T) {
	repo := &fakeFavoriteRepo{}
	svc := MustNewFavoriteService(WithFavoriteRepository(repo))

	created, err := svc.Add(context.Background(), "u1", 10)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = svc.Add(context.Background(), "u1", 10)
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
	assert.Len(t, repo.favorites, 1)

	// a different user may favorite the same item
	_, err = svc.Add(context.Background(), "u2", 10)
	require.NoError(t, err)
}

func TestRemoveIsScopedToOwner(t *testing.T) {
	repo := &fakeFavoriteRepo{}
	svc := MustNewFavoriteService(WithFavoriteRepository(repo))

	created, err := svc.Add(context.Background(), "u1", 10)
	require.NoError(t, err)

	err = svc.Remove(context.Background(), "someone-else", created.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	require.NoError(t, svc.Remove(context.Background(), "u1", created.ID))
	assert.Empty(t, repo.favorites)
}
