package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/gebeta/delivery/internal/dal/postgres"
	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/gebeta/delivery/internal/service/models/favorite"
	"github.com/gebeta/delivery/internal/service/models/menuitem"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// PostgresFavoriteRepository represents a Postgres favorite repository.
type PostgresFavoriteRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresFavoriteRepository creates a new Postgres favorite repository.
func NewPostgresFavoriteRepository(conn postgres.GenericConn) *PostgresFavoriteRepository {
	return &PostgresFavoriteRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetByMenuItem returns the favorite for a (user, menu item) pair, if any.
func (r *PostgresFavoriteRepository) GetByMenuItem(
	ctx context.Context,
	userID string,
	menuItemID int64,
) (favorite.Favorite, error) {
	sql, args, err := r.sb.
		Select("id", "user_id", "menu_item_id", "created_at").
		From("favorites").
		Where(sq.Eq{"user_id": userID, "menu_item_id": menuItemID}).
		ToSql()
	if err != nil {
		return favorite.Favorite{}, fmt.Errorf("failed to build query: %w", err)
	}

	var (
		f         favorite.Favorite
		createdAt pgtype.Timestamptz
	)
	err = r.conn.QueryRow(ctx, sql, args...).
		Scan(&f.ID, &f.UserID, &f.MenuItemID, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return favorite.Favorite{}, apperr.NotFound("favorite for menu item %d", menuItemID)
	}
	if err != nil {
		return favorite.Favorite{}, fmt.Errorf("failed to get favorite: %w", err)
	}
	f.CreatedAt = createdAt.Time

	return f, nil
}

// Insert creates a favorite and returns it with its id.
func (r *PostgresFavoriteRepository) Insert(
	ctx context.Context,
	f favorite.Favorite,
) (favorite.Favorite, error) {
	sql, args, err := r.sb.
		Insert("favorites").
		Columns("user_id", "menu_item_id").
		Values(f.UserID, f.MenuItemID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return favorite.Favorite{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	var createdAt pgtype.Timestamptz
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&f.ID, &createdAt); err != nil {
		return favorite.Favorite{}, fmt.Errorf("failed to insert favorite: %w", err)
	}
	f.CreatedAt = createdAt.Time

	return f, nil
}

// List returns a user's favorites with menu items resolved, newest first.
func (r *PostgresFavoriteRepository) List(
	ctx context.Context,
	userID string,
) ([]favorite.Favorite, error) {
	sql, args, err := r.sb.
		Select(
			"f.id",
			"f.user_id",
			"f.menu_item_id",
			"f.created_at",
			"m.restaurant_id",
			"m.category_id",
			"m.name",
			"m.item_img",
			"m.price",
			"m.is_available",
		).
		From("favorites f").
		Join("menus m ON m.id = f.menu_item_id").
		Where(sq.Eq{"f.user_id": userID}).
		OrderBy("f.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	var result []favorite.Favorite
	for rows.Next() {
		var (
			f         favorite.Favorite
			m         menuitem.MenuItem
			createdAt pgtype.Timestamptz
			image     pgtype.Text
		)
		err := rows.Scan(
			&f.ID,
			&f.UserID,
			&f.MenuItemID,
			&createdAt,
			&m.RestaurantID,
			&m.CategoryID,
			&m.Name,
			&image,
			&m.Price,
			&m.IsAvailable,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		f.CreatedAt = createdAt.Time
		m.ID = f.MenuItemID
		m.Image = image.String
		f.MenuItem = &m
		result = append(result, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Delete removes a favorite scoped to its owner.
func (r *PostgresFavoriteRepository) Delete(ctx context.Context, userID string, id int64) error {
	sql, args, err := r.sb.
		Delete("favorites").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("favorite %d", id)
	}

	return nil
}
