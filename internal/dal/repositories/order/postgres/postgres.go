package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gebeta/delivery/internal/dal/postgres"
	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/gebeta/delivery/internal/service/models/order"
	"github.com/gebeta/delivery/internal/service/models/orderitem"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id               int64              `db:"id"`
	UserId           string             `db:"user_id"`
	RestaurantId     int64              `db:"restaurant_id"`
	DeliveryPersonId pgtype.Text        `db:"delivery_person_id"`
	DeliveryAddress  string             `db:"delivery_address"`
	TotalPrice       int64              `db:"total_price"`
	Status           string             `db:"status"`
	Notes            pgtype.Text        `db:"notes"`
	CreatedAt        pgtype.Timestamptz `db:"created_at"`
	UpdatedAt        pgtype.Timestamptz `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	model := &order.Order{
		ID:              o.Id,
		UserID:          o.UserId,
		RestaurantID:    o.RestaurantId,
		DeliveryAddress: o.DeliveryAddress,
		TotalPrice:      o.TotalPrice,
		Status:          status,
		Notes:           o.Notes.String,
		CreatedAt:       o.CreatedAt.Time,
		UpdatedAt:       o.UpdatedAt.Time,
		OrderItems:      []orderitem.OrderItem{},
	}
	if o.DeliveryPersonId.Valid {
		id := o.DeliveryPersonId.String
		model.DeliveryPersonID = &id
	}

	return model, nil
}

var orderColumns = []string{
	"id",
	"user_id",
	"restaurant_id",
	"delivery_person_id",
	"delivery_address",
	"total_price",
	"status",
	"notes",
	"created_at",
	"updated_at",
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkInsert inserts multiple orders and returns them with generated ids,
// in input order. Callers pair the returned rows with their input by index,
// so the unnest is ordered by ordinality rather than left to the planner.
func (r *PostgresOrderRepository) BulkInsert(
	ctx context.Context,
	orders []order.Order,
) ([]order.Order, error) {
	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	sql := `
		INSERT INTO orders (
			user_id,
			restaurant_id,
			delivery_address,
			total_price,
			status,
			notes,
			created_at,
			updated_at
		)
		SELECT
			user_id,
			restaurant_id,
			delivery_address,
			total_price,
			status,
			notes,
			created_at,
			updated_at
		FROM unnest(
			$1::text[], $2::bigint[], $3::text[], $4::bigint[],
			$5::text[], $6::text[], $7::timestamptz[], $8::timestamptz[]
		)
		WITH ORDINALITY
		AS t(user_id, restaurant_id, delivery_address, total_price, status, notes, created_at, updated_at, ord)
		ORDER BY t.ord
		RETURNING ` + "id, user_id, restaurant_id, delivery_person_id, delivery_address, total_price, status, notes, created_at, updated_at"

	userIds := make([]string, len(orders))
	restaurantIds := make([]int64, len(orders))
	deliveryAddresses := make([]string, len(orders))
	totalPrices := make([]int64, len(orders))
	statuses := make([]string, len(orders))
	notes := make([]string, len(orders))
	createdAts := make([]time.Time, len(orders))
	updatedAts := make([]time.Time, len(orders))

	for i, o := range orders {
		userIds[i] = o.UserID
		restaurantIds[i] = o.RestaurantID
		deliveryAddresses[i] = o.DeliveryAddress
		totalPrices[i] = o.TotalPrice
		statuses[i] = o.Status.String()
		notes[i] = o.Notes
		createdAts[i] = o.CreatedAt
		updatedAts[i] = o.UpdatedAt
	}

	rows, err := r.conn.Query(ctx, sql,
		userIds,
		restaurantIds,
		deliveryAddresses,
		totalPrices,
		statuses,
		notes,
		createdAts,
		updatedAts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	i := 0
	for rows.Next() {
		model, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}

		model.OrderItems = append(model.OrderItems, orders[i].OrderItems...)
		i++

		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// GetByID returns one order without its items.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (order.Order, error) {
	sql, args, err := r.sb.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to query order: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return order.Order{}, fmt.Errorf("rows iteration error: %w", err)
		}

		return order.Order{}, apperr.NotFound("order %d", id)
	}

	model, err := scanOrder(rows)
	if err != nil {
		return order.Order{}, err
	}

	return *model, nil
}

// Query retrieves orders based on filter criteria, newest first.
func (r *PostgresOrderRepository) Query(
	ctx context.Context,
	filter *order.Query,
) ([]order.Order, error) {
	query := r.sb.
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC", "id DESC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.UserIds) > 0 {
		query = query.Where(sq.Eq{"user_id": filter.UserIds})
	}
	if len(filter.RestaurantIds) > 0 {
		query = query.Where(sq.Eq{"restaurant_id": filter.RestaurantIds})
	}
	if len(filter.DeliveryPersonIds) > 0 {
		query = query.Where(sq.Eq{"delivery_person_id": filter.DeliveryPersonIds})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		query = query.Where(sq.Eq{"status": statuses})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		model, err := scanOrder(rows)
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

// Update applies the non-nil fields of upd to one order and returns the
// updated row.
func (r *PostgresOrderRepository) Update(
	ctx context.Context,
	id int64,
	upd order.Update,
) (order.Order, error) {
	query := r.sb.
		Update("orders").
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + "id, user_id, restaurant_id, delivery_person_id, delivery_address, total_price, status, notes, created_at, updated_at")

	if upd.Status != nil {
		query = query.Set("status", upd.Status.String())
	}
	if upd.DeliveryPersonID != nil {
		query = query.Set("delivery_person_id", *upd.DeliveryPersonID)
	}
	if upd.DeliveryAddress != nil {
		query = query.Set("delivery_address", *upd.DeliveryAddress)
	}
	if upd.Notes != nil {
		query = query.Set("notes", *upd.Notes)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build update query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to update order: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return order.Order{}, fmt.Errorf("rows iteration error: %w", err)
		}

		return order.Order{}, apperr.NotFound("order %d", id)
	}

	model, err := scanOrder(rows)
	if err != nil {
		return order.Order{}, err
	}

	return *model, nil
}

// Delete hard-deletes an order. Not part of the core lifecycle.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.
		Delete("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("order %d", id)
	}

	return nil
}

func scanOrder(rows pgx.Rows) (*order.Order, error) {
	var dal OrderDal
	err := rows.Scan(
		&dal.Id,
		&dal.UserId,
		&dal.RestaurantId,
		&dal.DeliveryPersonId,
		&dal.DeliveryAddress,
		&dal.TotalPrice,
		&dal.Status,
		&dal.Notes,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	model, err := dal.ToModel()
	if err != nil {
		return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
	}

	return model, nil
}
