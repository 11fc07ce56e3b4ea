package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/gebeta/delivery/internal/dal/postgres"
	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/gebeta/delivery/internal/service/models/cartline"
	"github.com/gebeta/delivery/internal/service/models/menuitem"
	"github.com/gebeta/delivery/internal/service/models/restaurant"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// CartLineDal represents the cart line data access layer model joined with
// its menu item and restaurant.
type CartLineDal struct {
	Id         int64  `db:"id"`
	UserId     string `db:"user_id"`
	MenuItemId int64  `db:"menu_item_id"`
	Quantity   int    `db:"quantity"`

	MenuRestaurantId int64              `db:"menu_restaurant_id"`
	MenuCategoryId   int64              `db:"menu_category_id"`
	MenuName         string             `db:"menu_name"`
	MenuImage        pgtype.Text        `db:"menu_image"`
	MenuPrice        int64              `db:"menu_price"`
	MenuIsAvailable  bool               `db:"menu_is_available"`
	MenuCreatedAt    pgtype.Timestamptz `db:"menu_created_at"`

	RestaurantOwnerId  string      `db:"restaurant_owner_id"`
	RestaurantName     string      `db:"restaurant_name"`
	RestaurantLocation string      `db:"restaurant_location"`
	RestaurantImage    pgtype.Text `db:"restaurant_image"`
}

// ToModel converts CartLineDal to the service layer CartLine model.
func (c *CartLineDal) ToModel() *cartline.CartLine {
	return &cartline.CartLine{
		ID:         c.Id,
		UserID:     c.UserId,
		MenuItemID: c.MenuItemId,
		Quantity:   c.Quantity,
		MenuItem: &menuitem.MenuItem{
			ID:           c.MenuItemId,
			RestaurantID: c.MenuRestaurantId,
			CategoryID:   c.MenuCategoryId,
			Name:         c.MenuName,
			Image:        c.MenuImage.String,
			Price:        c.MenuPrice,
			IsAvailable:  c.MenuIsAvailable,
			CreatedAt:    c.MenuCreatedAt.Time,
			Restaurant: &restaurant.Restaurant{
				ID:       c.MenuRestaurantId,
				OwnerID:  c.RestaurantOwnerId,
				Name:     c.RestaurantName,
				Location: c.RestaurantLocation,
				Image:    c.RestaurantImage.String,
			},
		},
	}
}

// PostgresCartRepository represents a Postgres cart line repository.
type PostgresCartRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresCartRepository creates a new Postgres cart line repository.
func NewPostgresCartRepository(conn postgres.GenericConn) *PostgresCartRepository {
	return &PostgresCartRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert creates a new cart line and returns it with its id.
func (r *PostgresCartRepository) Insert(
	ctx context.Context,
	line cartline.CartLine,
) (cartline.CartLine, error) {
	sql, args, err := r.sb.
		Insert("cart_items").
		Columns("user_id", "menu_item_id", "quantity").
		Values(line.UserID, line.MenuItemID, line.Quantity).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return cartline.CartLine{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&line.ID); err != nil {
		return cartline.CartLine{}, fmt.Errorf("failed to insert cart line: %w", err)
	}

	return line, nil
}

// GetByID returns a single cart line scoped to its owner.
func (r *PostgresCartRepository) GetByID(
	ctx context.Context,
	userID string,
	id int64,
) (cartline.CartLine, error) {
	sql, args, err := r.sb.
		Select("id", "user_id", "menu_item_id", "quantity").
		From("cart_items").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return cartline.CartLine{}, fmt.Errorf("failed to build select query: %w", err)
	}

	var line cartline.CartLine
	err = r.conn.QueryRow(ctx, sql, args...).
		Scan(&line.ID, &line.UserID, &line.MenuItemID, &line.Quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return cartline.CartLine{}, apperr.NotFound("cart line %d", id)
	}
	if err != nil {
		return cartline.CartLine{}, fmt.Errorf("failed to get cart line: %w", err)
	}

	return line, nil
}

// GetByMenuItem returns the line for a (user, menu item) pair, if any.
func (r *PostgresCartRepository) GetByMenuItem(
	ctx context.Context,
	userID string,
	menuItemID int64,
) (cartline.CartLine, error) {
	sql, args, err := r.sb.
		Select("id", "user_id", "menu_item_id", "quantity").
		From("cart_items").
		Where(sq.Eq{"user_id": userID, "menu_item_id": menuItemID}).
		ToSql()
	if err != nil {
		return cartline.CartLine{}, fmt.Errorf("failed to build select query: %w", err)
	}

	var line cartline.CartLine
	err = r.conn.QueryRow(ctx, sql, args...).
		Scan(&line.ID, &line.UserID, &line.MenuItemID, &line.Quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return cartline.CartLine{}, apperr.NotFound("cart line for menu item %d", menuItemID)
	}
	if err != nil {
		return cartline.CartLine{}, fmt.Errorf("failed to get cart line: %w", err)
	}

	return line, nil
}

// List returns all of a user's cart lines in insertion order, each resolved
// with its menu item and that item's restaurant.
func (r *PostgresCartRepository) List(
	ctx context.Context,
	userID string,
) ([]cartline.CartLine, error) {
	return r.list(ctx, userID, false)
}

// ListForUpdate is List with row locks on the cart lines and their menu
// items, so concurrent checkouts for the same user serialize on the lines
// they are about to consume.
func (r *PostgresCartRepository) ListForUpdate(
	ctx context.Context,
	userID string,
) ([]cartline.CartLine, error) {
	return r.list(ctx, userID, true)
}

func (r *PostgresCartRepository) list(
	ctx context.Context,
	userID string,
	forUpdate bool,
) ([]cartline.CartLine, error) {
	query := r.sb.
		Select(
			"ci.id",
			"ci.user_id",
			"ci.menu_item_id",
			"ci.quantity",
			"m.restaurant_id",
			"m.category_id",
			"m.name",
			"m.item_img",
			"m.price",
			"m.is_available",
			"m.created_at",
			"r.owner_id",
			"r.name",
			"r.location",
			"r.image",
		).
		From("cart_items ci").
		Join("menus m ON m.id = ci.menu_item_id").
		Join("restaurants r ON r.id = m.restaurant_id").
		Where(sq.Eq{"ci.user_id": userID}).
		OrderBy("ci.id ASC")

	if forUpdate {
		query = query.Suffix("FOR UPDATE OF ci, m")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}
	defer rows.Close()

	var result []cartline.CartLine
	for rows.Next() {
		var dal CartLineDal
		err := rows.Scan(
			&dal.Id,
			&dal.UserId,
			&dal.MenuItemId,
			&dal.Quantity,
			&dal.MenuRestaurantId,
			&dal.MenuCategoryId,
			&dal.MenuName,
			&dal.MenuImage,
			&dal.MenuPrice,
			&dal.MenuIsAvailable,
			&dal.MenuCreatedAt,
			&dal.RestaurantOwnerId,
			&dal.RestaurantName,
			&dal.RestaurantLocation,
			&dal.RestaurantImage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateQuantity sets the quantity of a line.
func (r *PostgresCartRepository) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	sql, args, err := r.sb.
		Update("cart_items").
		Set("quantity", quantity).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update cart line quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("cart line %d", id)
	}

	return nil
}

// Delete removes a single line.
func (r *PostgresCartRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.
		Delete("cart_items").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete cart line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("cart line %d", id)
	}

	return nil
}

// DeleteByIDs removes exactly the given lines in one statement.
func (r *PostgresCartRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	sql, args, err := r.sb.
		Delete("cart_items").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to delete cart lines: %w", err)
	}

	return nil
}

// DeleteForUser removes every line a user owns.
func (r *PostgresCartRepository) DeleteForUser(ctx context.Context, userID string) error {
	sql, args, err := r.sb.
		Delete("cart_items").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
