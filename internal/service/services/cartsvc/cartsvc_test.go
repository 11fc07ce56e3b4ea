package cartsvc

import (
	"context"
	"testing"

	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/gebeta/delivery/internal/service/models/cartline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCartRepo struct {
	lines  []cartline.CartLine
	nextID int64
}

func (f *fakeCartRepo) Insert(_ context.Context, line cartline.CartLine) (cartline.CartLine, error) {
	f.nextID++
	line.ID = f.nextID
	f.lines = append(f.lines, line)

	return line, nil
}

func (f *fakeCartRepo) GetByID(_ context.Context, userID string, id int64) (cartline.CartLine, error) {
	for _, l := range f.lines {
		if l.ID == id && l.UserID == userID {
			return l, nil
		}
	}

	return cartline.CartLine{}, apperr.NotFound("cart item %d", id)
}

func (f *fakeCartRepo) GetByMenuItem(_ context.Context, userID string, menuItemID int64) (cartline.CartLine, error) {
	for _, l := range f.lines {
		if l.UserID == userID && l.MenuItemID == menuItemID {
			return l, nil
		}
	}

	return cartline.CartLine{}, apperr.NotFound("cart item for menu item %d", menuItemID)
}

func (f *fakeCartRepo) List(_ context.Context, userID string) ([]cartline.CartLine, error) {
	out := make([]cartline.CartLine, 0)
	for _, l := range f.lines {
		if l.UserID == userID {
			out = append(out, l)
		}
	}

	return out, nil
}

func (f *fakeCartRepo) ListForUpdate(ctx context.Context, userID string) ([]cartline.CartLine, error) {
	return f.List(ctx, userID)
}

func (f *fakeCartRepo) UpdateQuantity(_ context.Context, id int64, quantity int) error {
	for i := range f.lines {
		if f.lines[i].ID == id {
			f.lines[i].Quantity = quantity

			return nil
		}
	}

	return apperr.NotFound("cart item %d", id)
}

func (f *fakeCartRepo) Delete(_ context.Context, id int64) error {
	for i := range f.lines {
		if f.lines[i].ID == id {
			f.lines = append(f.lines[:i], f.lines[i+1:]...)

			return nil
		}
	}

	return apperr.NotFound("cart item %d", id)
}

func (f *fakeCartRepo) DeleteByIDs(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if err := f.Delete(ctx, id); err != nil {
			return err
		}
	}

	return nil
}

func (f *fakeCartRepo) DeleteForUser(_ context.Context, userID string) error {
	kept := f.lines[:0]
	for _, l := range f.lines {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	f.lines = kept

	return nil
}

func newTestService(repo *fakeCartRepo) *CartService {
	return MustNewCartService(WithCartRepository(repo))
}

func TestAddInsertsNewLineClamped(t *testing.T) {
	repo := &fakeCartRepo{}
	svc := newTestService(repo)

	line, err := svc.Add(context.Background(), "u1", 10, 9)
	require.NoError(t, err)
	assert.Equal(t, 5, line.Quantity)
	assert.Len(t, repo.lines, 1)
}

func TestAddMergesExistingLine(t *testing.T) {
	repo := &fakeCartRepo{}
	svc := newTestService(repo)

	_, err := svc.Add(context.Background(), "u1", 10, 2)
	require.NoError(t, err)

	merged, err := svc.Add(context.Background(), "u1", 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, merged.Quantity)
	assert.Len(t, repo.lines, 1, "merging must not create a second line")

	// merge saturates at the maximum
	merged, err = svc.Add(context.Background(), "u1", 10, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, merged.Quantity)
}

func TestIncrementSaturates(t *testing.T) {
	repo := &fakeCartRepo{lines: []cartline.CartLine{{ID: 1, UserID: "u1", MenuItemID: 10, Quantity: 5}}, nextID: 1}
	svc := newTestService(repo)

	line, err := svc.Increment(context.Background(), "u1", 1)
	require.NoError(t, err)
	assert.Equal(t, 5, line.Quantity)
}

func TestDecrementDeletesAtMinimum(t *testing.T) {
	repo := &fakeCartRepo{lines: []cartline.CartLine{{ID: 1, UserID: "u1", MenuItemID: 10, Quantity: 2}}, nextID: 1}
	svc := newTestService(repo)

	line, err := svc.Decrement(context.Background(), "u1", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)
	assert.Len(t, repo.lines, 1)

	line, err = svc.Decrement(context.Background(), "u1", 1)
	require.NoError(t, err)
	assert.Equal(t, 0, line.Quantity)
	assert.Empty(t, repo.lines, "decrement below the minimum removes the line")
}

func TestSetQuantityClamps(t *testing.T) {
	repo := &fakeCartRepo{lines: []cartline.CartLine{{ID: 1, UserID: "u1", MenuItemID: 10, Quantity: 2}}, nextID: 1}
	svc := newTestService(repo)

	line, err := svc.SetQuantity(context.Background(), "u1", 1, 99)
	require.NoError(t, err)
	assert.Equal(t, 5, line.Quantity)
}

func TestRemoveIsScopedToOwner(t *testing.T) {
	repo := &fakeCartRepo{lines: []cartline.CartLine{{ID: 1, UserID: "u1", MenuItemID: 10, Quantity: 2}}, nextID: 1}
	svc := newTestService(repo)

	err := svc.Remove(context.Background(), "someone-else", 1)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Len(t, repo.lines, 1)

	require.NoError(t, svc.Remove(context.Background(), "u1", 1))
	assert.Empty(t, repo.lines)
}

func TestClearEmptiesOnlyThatUser(t *testing.T) {
	repo := &fakeCartRepo{lines: []cartline.CartLine{
		{ID: 1, UserID: "u1", MenuItemID: 10, Quantity: 1},
		{ID: 2, UserID: "u2", MenuItemID: 10, Quantity: 1},
	}, nextID: 2}
	svc := newTestService(repo)

	require.NoError(t, svc.Clear(context.Background(), "u1"))
	require.Len(t, repo.lines, 1)
	assert.Equal(t, "u2", repo.lines[0].UserID)
}
