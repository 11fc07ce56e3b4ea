package cartsvc

import (
	"context"

	"github.com/gebeta/delivery/internal/dal/interfaces/icartrepo"
	"github.com/gebeta/delivery/internal/dal/postgres"
	postgresrepo "github.com/gebeta/delivery/internal/dal/repositories/cartline/postgres"
	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/gebeta/delivery/internal/service/models/cartline"
)

// CartService owns the pre-checkout cart: one line per (user, menu item),
// quantities clamped to the 1..5 range.
type CartService struct {
	cartRepo icartrepo.ICartRepository
}

// option is a function that configures the CartService.
type option func(*CartService)

// MustNewCartService creates a new CartService.
func MustNewCartService(opts ...option) *CartService {
	s := &CartService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient wires the default Postgres-backed cart repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *CartService) {
		s.cartRepo = postgresrepo.NewPostgresCartRepository(pgClient.Pool())
	}
}

// WithCartRepository sets the cart repository directly.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCartRepository(repo icartrepo.ICartRepository) option {
	return func(s *CartService) {
		s.cartRepo = repo
	}
}

// Add puts a menu item into the user's cart. If the item is already there
// the quantities are merged; the result is always clamped into the valid
// range, never rejected.
func (s *CartService) Add(ctx context.Context, userID string, menuItemID int64, quantity int) (cartline.CartLine, error) {
	existing, err := s.cartRepo.GetByMenuItem(ctx, userID, menuItemID)
	switch {
	case err == nil:
		merged := cartline.ClampQuantity(existing.Quantity + quantity)
		if err := s.cartRepo.UpdateQuantity(ctx, existing.ID, merged); err != nil {
			return cartline.CartLine{}, err
		}
		existing.Quantity = merged

		return existing, nil

	case apperr.IsNotFound(err):
		return s.cartRepo.Insert(ctx, cartline.CartLine{
			UserID:     userID,
			MenuItemID: menuItemID,
			Quantity:   cartline.ClampQuantity(quantity),
		})

	default:
		return cartline.CartLine{}, err
	}
}

// Increment bumps a line's quantity by one, saturating at the maximum.
func (s *CartService) Increment(ctx context.Context, userID string, id int64) (cartline.CartLine, error) {
	line, err := s.cartRepo.GetByID(ctx, userID, id)
	if err != nil {
		return cartline.CartLine{}, err
	}

	next := cartline.ClampQuantity(line.Quantity + 1)
	if next != line.Quantity {
		if err := s.cartRepo.UpdateQuantity(ctx, line.ID, next); err != nil {
			return cartline.CartLine{}, err
		}
		line.Quantity = next
	}

	return line, nil
}

// Decrement lowers a line's quantity by one. At one or below the line is
// removed from the cart entirely; the returned line then has Quantity 0.
func (s *CartService) Decrement(ctx context.Context, userID string, id int64) (cartline.CartLine, error) {
	line, err := s.cartRepo.GetByID(ctx, userID, id)
	if err != nil {
		return cartline.CartLine{}, err
	}

	if line.Quantity <= cartline.MinQuantity {
		if err := s.cartRepo.Delete(ctx, line.ID); err != nil {
			return cartline.CartLine{}, err
		}
		line.Quantity = 0

		return line, nil
	}

	line.Quantity--
	if err := s.cartRepo.UpdateQuantity(ctx, line.ID, line.Quantity); err != nil {
		return cartline.CartLine{}, err
	}

	return line, nil
}

// SetQuantity sets a line's quantity directly, clamped to the valid range.
func (s *CartService) SetQuantity(ctx context.Context, userID string, id int64, quantity int) (cartline.CartLine, error) {
	line, err := s.cartRepo.GetByID(ctx, userID, id)
	if err != nil {
		return cartline.CartLine{}, err
	}

	line.Quantity = cartline.ClampQuantity(quantity)
	if err := s.cartRepo.UpdateQuantity(ctx, line.ID, line.Quantity); err != nil {
		return cartline.CartLine{}, err
	}

	return line, nil
}

// Remove deletes one line from the user's cart.
func (s *CartService) Remove(ctx context.Context, userID string, id int64) error {
	if _, err := s.cartRepo.GetByID(ctx, userID, id); err != nil {
		return err
	}

	return s.cartRepo.Delete(ctx, id)
}

// Clear empties the user's cart.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.cartRepo.DeleteForUser(ctx, userID)
}

// List returns the user's cart in insertion order, each line with its menu
// item and restaurant resolved.
func (s *CartService) List(ctx context.Context, userID string) ([]cartline.CartLine, error) {
	return s.cartRepo.List(ctx, userID)
}
