package postgresrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gebeta/delivery/internal/dal/postgres"
	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/gebeta/delivery/internal/service/models/category"
	"github.com/gebeta/delivery/internal/service/models/menuitem"
	"github.com/gebeta/delivery/internal/service/models/promo"
	"github.com/gebeta/delivery/internal/service/models/restaurant"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// RestaurantDal represents the restaurant data access layer model.
type RestaurantDal struct {
	Id           int64              `db:"id"`
	OwnerId      string             `db:"owner_id"`
	Name         string             `db:"name"`
	Image        pgtype.Text        `db:"image"`
	Description  pgtype.Text        `db:"description"`
	Location     string             `db:"location"`
	Latitude     pgtype.Text        `db:"latitude"`
	Longitude    pgtype.Text        `db:"longitude"`
	OpeningHours []byte             `db:"opening_hours"`
	CreatedAt    pgtype.Timestamptz `db:"created_at"`
}

// ToModel converts RestaurantDal to the service layer Restaurant model.
func (d *RestaurantDal) ToModel() *restaurant.Restaurant {
	return &restaurant.Restaurant{
		ID:           d.Id,
		OwnerID:      d.OwnerId,
		Name:         d.Name,
		Image:        d.Image.String,
		Description:  d.Description.String,
		Location:     d.Location,
		Latitude:     d.Latitude.String,
		Longitude:    d.Longitude.String,
		OpeningHours: d.OpeningHours,
		CreatedAt:    d.CreatedAt.Time,
	}
}

// MenuItemDal represents the menu item data access layer model.
type MenuItemDal struct {
	Id           int64              `db:"id"`
	RestaurantId int64              `db:"restaurant_id"`
	CategoryId   int64              `db:"category_id"`
	Name         string             `db:"name"`
	Image        pgtype.Text        `db:"item_img"`
	Description  pgtype.Text        `db:"description"`
	Price        int64              `db:"price"`
	IsAvailable  bool               `db:"is_available"`
	CreatedAt    pgtype.Timestamptz `db:"created_at"`
}

// ToModel converts MenuItemDal to the service layer MenuItem model.
func (d *MenuItemDal) ToModel() *menuitem.MenuItem {
	return &menuitem.MenuItem{
		ID:           d.Id,
		RestaurantID: d.RestaurantId,
		CategoryID:   d.CategoryId,
		Name:         d.Name,
		Image:        d.Image.String,
		Description:  d.Description.String,
		Price:        d.Price,
		IsAvailable:  d.IsAvailable,
		CreatedAt:    d.CreatedAt.Time,
	}
}

var restaurantColumns = []string{
	"id", "owner_id", "name", "image", "description", "location",
	"latitude", "longitude", "opening_hours", "created_at",
}

var menuColumns = []string{
	"id", "restaurant_id", "category_id", "name", "item_img",
	"description", "price", "is_available", "created_at",
}

// PostgresCatalogRepository gives access to restaurants, menus, categories
// and promos.
type PostgresCatalogRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresCatalogRepository creates a new Postgres catalog repository.
func NewPostgresCatalogRepository(conn postgres.GenericConn) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ListRestaurants returns every restaurant, newest first.
func (r *PostgresCatalogRepository) ListRestaurants(
	ctx context.Context,
) ([]restaurant.Restaurant, error) {
	sql, args, err := r.sb.
		Select(restaurantColumns...).
		From("restaurants").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer rows.Close()

	var result []restaurant.Restaurant
	for rows.Next() {
		model, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// GetRestaurant returns one restaurant.
func (r *PostgresCatalogRepository) GetRestaurant(
	ctx context.Context,
	id int64,
) (restaurant.Restaurant, error) {
	sql, args, err := r.sb.
		Select(restaurantColumns...).
		From("restaurants").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("failed to query restaurant: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return restaurant.Restaurant{}, fmt.Errorf("rows iteration error: %w", err)
		}

		return restaurant.Restaurant{}, apperr.NotFound("restaurant %d", id)
	}

	model, err := scanRestaurant(rows)
	if err != nil {
		return restaurant.Restaurant{}, err
	}

	return *model, nil
}

// InsertRestaurant creates a restaurant and returns it with its id.
func (r *PostgresCatalogRepository) InsertRestaurant(
	ctx context.Context,
	res restaurant.Restaurant,
) (restaurant.Restaurant, error) {
	sql, args, err := r.sb.
		Insert("restaurants").
		Columns("owner_id", "name", "image", "description", "location", "latitude", "longitude", "opening_hours").
		Values(res.OwnerID, res.Name, res.Image, res.Description, res.Location, res.Latitude, res.Longitude, []byte(res.OpeningHours)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	var createdAt pgtype.Timestamptz
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&res.ID, &createdAt); err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("failed to insert restaurant: %w", err)
	}
	res.CreatedAt = createdAt.Time

	return res, nil
}

// UpdateRestaurant applies the non-nil fields of upd and returns the
// updated row.
func (r *PostgresCatalogRepository) UpdateRestaurant(
	ctx context.Context,
	id int64,
	upd restaurant.Update,
) (restaurant.Restaurant, error) {
	query := r.sb.
		Update("restaurants").
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(restaurantColumns, ", "))

	if upd.Name != nil {
		query = query.Set("name", *upd.Name)
	}
	if upd.Image != nil {
		query = query.Set("image", *upd.Image)
	}
	if upd.Description != nil {
		query = query.Set("description", *upd.Description)
	}
	if upd.Location != nil {
		query = query.Set("location", *upd.Location)
	}
	if upd.Latitude != nil {
		query = query.Set("latitude", *upd.Latitude)
	}
	if upd.Longitude != nil {
		query = query.Set("longitude", *upd.Longitude)
	}
	if upd.OpeningHours != nil {
		query = query.Set("opening_hours", []byte(upd.OpeningHours))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("failed to build update query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("failed to update restaurant: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return restaurant.Restaurant{}, fmt.Errorf("rows iteration error: %w", err)
		}

		return restaurant.Restaurant{}, apperr.NotFound("restaurant %d", id)
	}

	model, err := scanRestaurant(rows)
	if err != nil {
		return restaurant.Restaurant{}, err
	}

	return *model, nil
}

// ListMenuItems returns a restaurant's menu in insertion order.
func (r *PostgresCatalogRepository) ListMenuItems(
	ctx context.Context,
	restaurantID int64,
) ([]menuitem.MenuItem, error) {
	sql, args, err := r.sb.
		Select(menuColumns...).
		From("menus").
		Where(sq.Eq{"restaurant_id": restaurantID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var result []menuitem.MenuItem
	for rows.Next() {
		model, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// GetMenuItem returns one menu item.
func (r *PostgresCatalogRepository) GetMenuItem(
	ctx context.Context,
	id int64,
) (menuitem.MenuItem, error) {
	sql, args, err := r.sb.
		Select(menuColumns...).
		From("menus").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return menuitem.MenuItem{}, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return menuitem.MenuItem{}, fmt.Errorf("failed to query menu item: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return menuitem.MenuItem{}, fmt.Errorf("rows iteration error: %w", err)
		}

		return menuitem.MenuItem{}, apperr.NotFound("menu item %d", id)
	}

	model, err := scanMenuItem(rows)
	if err != nil {
		return menuitem.MenuItem{}, err
	}

	return *model, nil
}

// InsertMenuItem creates a menu item and returns it with its id.
func (r *PostgresCatalogRepository) InsertMenuItem(
	ctx context.Context,
	m menuitem.MenuItem,
) (menuitem.MenuItem, error) {
	sql, args, err := r.sb.
		Insert("menus").
		Columns("restaurant_id", "category_id", "name", "item_img", "description", "price", "is_available").
		Values(m.RestaurantID, m.CategoryID, m.Name, m.Image, m.Description, m.Price, m.IsAvailable).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return menuitem.MenuItem{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	var createdAt pgtype.Timestamptz
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&m.ID, &createdAt); err != nil {
		return menuitem.MenuItem{}, fmt.Errorf("failed to insert menu item: %w", err)
	}
	m.CreatedAt = createdAt.Time

	return m, nil
}

// UpdateMenuItemPrice changes the live price of a menu item. Existing order
// items keep their snapshotted price.
func (r *PostgresCatalogRepository) UpdateMenuItemPrice(
	ctx context.Context,
	id int64,
	price int64,
) error {
	return r.updateMenu(ctx, id, "price", price)
}

// SetMenuItemAvailability toggles whether the item can be ordered.
func (r *PostgresCatalogRepository) SetMenuItemAvailability(
	ctx context.Context,
	id int64,
	available bool,
) error {
	return r.updateMenu(ctx, id, "is_available", available)
}

func (r *PostgresCatalogRepository) updateMenu(
	ctx context.Context,
	id int64,
	column string,
	value any,
) error {
	sql, args, err := r.sb.
		Update("menus").
		Set(column, value).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("menu item %d", id)
	}

	return nil
}

// ListCategories returns every category ordered by name.
func (r *PostgresCatalogRepository) ListCategories(
	ctx context.Context,
) ([]category.Category, error) {
	sql, args, err := r.sb.
		Select("id", "name", "image", "description", "created_at").
		From("categories").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var result []category.Category
	for rows.Next() {
		var (
			c           category.Category
			image, desc pgtype.Text
			createdAt   pgtype.Timestamptz
		)
		if err := rows.Scan(&c.ID, &c.Name, &image, &desc, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c.Image = image.String
		c.Description = desc.String
		c.CreatedAt = createdAt.Time
		result = append(result, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// ListActivePromos returns promos whose deadline has not passed, soonest
// deadline first.
func (r *PostgresCatalogRepository) ListActivePromos(
	ctx context.Context,
) ([]promo.Promo, error) {
	sql, args, err := r.sb.
		Select("id", "headline", "subheading", "cta", "deadline", "created_at").
		From("promo").
		Where(sq.Gt{"deadline": time.Now()}).
		OrderBy("deadline ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query promos: %w", err)
	}
	defer rows.Close()

	var result []promo.Promo
	for rows.Next() {
		var (
			p                   promo.Promo
			cta                 pgtype.Text
			deadline, createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&p.ID, &p.Headline, &p.Subheading, &cta, &deadline, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan promo: %w", err)
		}
		p.CTA = cta.String
		p.Deadline = deadline.Time
		p.CreatedAt = createdAt.Time
		result = append(result, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// InsertPromo creates a promo and returns it with its id.
func (r *PostgresCatalogRepository) InsertPromo(
	ctx context.Context,
	p promo.Promo,
) (promo.Promo, error) {
	sql, args, err := r.sb.
		Insert("promo").
		Columns("headline", "subheading", "cta", "deadline").
		Values(p.Headline, p.Subheading, p.CTA, p.Deadline).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return promo.Promo{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	var createdAt pgtype.Timestamptz
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&p.ID, &createdAt); err != nil {
		return promo.Promo{}, fmt.Errorf("failed to insert promo: %w", err)
	}
	p.CreatedAt = createdAt.Time

	return p, nil
}

func scanRestaurant(rows pgx.Rows) (*restaurant.Restaurant, error) {
	var dal RestaurantDal
	err := rows.Scan(
		&dal.Id,
		&dal.OwnerId,
		&dal.Name,
		&dal.Image,
		&dal.Description,
		&dal.Location,
		&dal.Latitude,
		&dal.Longitude,
		&dal.OpeningHours,
		&dal.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan restaurant: %w", err)
	}

	return dal.ToModel(), nil
}

func scanMenuItem(rows pgx.Rows) (*menuitem.MenuItem, error) {
	var dal MenuItemDal
	err := rows.Scan(
		&dal.Id,
		&dal.RestaurantId,
		&dal.CategoryId,
		&dal.Name,
		&dal.Image,
		&dal.Description,
		&dal.Price,
		&dal.IsAvailable,
		&dal.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan menu item: %w", err)
	}

	return dal.ToModel(), nil
}
