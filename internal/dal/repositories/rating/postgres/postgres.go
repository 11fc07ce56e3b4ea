package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/gebeta/delivery/internal/dal/postgres"
	"github.com/gebeta/delivery/internal/service/models/rating"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// PostgresRatingRepository stores restaurant and menu ratings.
type PostgresRatingRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresRatingRepository creates a new Postgres rating repository.
func NewPostgresRatingRepository(conn postgres.GenericConn) *PostgresRatingRepository {
	return &PostgresRatingRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// InsertRestaurantRating creates a restaurant rating.
func (r *PostgresRatingRepository) InsertRestaurantRating(
	ctx context.Context,
	rr rating.RestaurantRating,
) (rating.RestaurantRating, error) {
	sql, args, err := r.sb.
		Insert("restaurant_ratings").
		Columns("reviewer_id", "restaurant_id", "star_rating", "feedback").
		Values(rr.ReviewerID, rr.RestaurantID, rr.StarRating, rr.Feedback).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return rating.RestaurantRating{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	var createdAt pgtype.Timestamptz
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&rr.ID, &createdAt); err != nil {
		return rating.RestaurantRating{}, fmt.Errorf("failed to insert restaurant rating: %w", err)
	}
	rr.CreatedAt = createdAt.Time

	return rr, nil
}

// ListRestaurantRatings returns a restaurant's ratings, newest first.
func (r *PostgresRatingRepository) ListRestaurantRatings(
	ctx context.Context,
	restaurantID int64,
) ([]rating.RestaurantRating, error) {
	sql, args, err := r.sb.
		Select("id", "reviewer_id", "restaurant_id", "star_rating", "feedback", "created_at").
		From("restaurant_ratings").
		Where(sq.Eq{"restaurant_id": restaurantID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query restaurant ratings: %w", err)
	}
	defer rows.Close()

	var result []rating.RestaurantRating
	for rows.Next() {
		rr, err := scanRestaurantRating(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rr)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// InsertMenuRating creates a menu item rating.
func (r *PostgresRatingRepository) InsertMenuRating(
	ctx context.Context,
	mr rating.MenuRating,
) (rating.MenuRating, error) {
	sql, args, err := r.sb.
		Insert("menu_ratings").
		Columns("reviewer_id", "menu_item_id", "star_rating", "feedback").
		Values(mr.ReviewerID, mr.MenuItemID, mr.StarRating, mr.Feedback).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return rating.MenuRating{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	var createdAt pgtype.Timestamptz
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&mr.ID, &createdAt); err != nil {
		return rating.MenuRating{}, fmt.Errorf("failed to insert menu rating: %w", err)
	}
	mr.CreatedAt = createdAt.Time

	return mr, nil
}

// ListMenuRatings returns a menu item's ratings, newest first.
func (r *PostgresRatingRepository) ListMenuRatings(
	ctx context.Context,
	menuItemID int64,
) ([]rating.MenuRating, error) {
	sql, args, err := r.sb.
		Select("id", "reviewer_id", "menu_item_id", "star_rating", "feedback", "created_at").
		From("menu_ratings").
		Where(sq.Eq{"menu_item_id": menuItemID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu ratings: %w", err)
	}
	defer rows.Close()

	var result []rating.MenuRating
	for rows.Next() {
		var (
			mr        rating.MenuRating
			feedback  pgtype.Text
			createdAt pgtype.Timestamptz
		)
		err := rows.Scan(&mr.ID, &mr.ReviewerID, &mr.MenuItemID, &mr.StarRating, &feedback, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu rating: %w", err)
		}
		mr.Feedback = feedback.String
		mr.CreatedAt = createdAt.Time
		result = append(result, mr)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

func scanRestaurantRating(rows pgx.Rows) (rating.RestaurantRating, error) {
	var (
		rr        rating.RestaurantRating
		feedback  pgtype.Text
		createdAt pgtype.Timestamptz
	)
	err := rows.Scan(&rr.ID, &rr.ReviewerID, &rr.RestaurantID, &rr.StarRating, &feedback, &createdAt)
	if err != nil {
		return rating.RestaurantRating{}, fmt.Errorf("failed to scan restaurant rating: %w", err)
	}
	rr.Feedback = feedback.String
	rr.CreatedAt = createdAt.Time

	return rr, nil
}
