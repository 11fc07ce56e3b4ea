package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gebeta/delivery/internal/dal/postgres"
	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/gebeta/delivery/internal/service/models/user"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// PostgresUserRepository reads and writes the slice of user state this
// backend owns: push tokens and delivery locations.
type PostgresUserRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresUserRepository creates a new Postgres user repository.
func NewPostgresUserRepository(conn postgres.GenericConn) *PostgresUserRepository {
	return &PostgresUserRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Get returns one user.
func (r *PostgresUserRepository) Get(ctx context.Context, id string) (user.User, error) {
	sql, args, err := r.sb.
		Select("id", "name", "email", "role", "push_token", "latitude", "longitude", "address", "updated_at").
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return user.User{}, fmt.Errorf("failed to build query: %w", err)
	}

	var (
		u                                    user.User
		pushToken, latitude, longitude, addr pgtype.Text
		updatedAt                            pgtype.Timestamptz
	)
	err = r.conn.QueryRow(ctx, sql, args...).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &pushToken, &latitude, &longitude, &addr, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, apperr.NotFound("user %s", id)
	}
	if err != nil {
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	u.PushToken = pushToken.String
	u.Latitude = latitude.String
	u.Longitude = longitude.String
	u.Address = addr.String
	u.UpdatedAt = updatedAt.Time

	return u, nil
}

// UpdatePushToken stores the user's push delivery token.
func (r *PostgresUserRepository) UpdatePushToken(ctx context.Context, id string, token string) error {
	return r.update(ctx, id, map[string]any{"push_token": token})
}

// UpdateLocation stores the user's delivery coordinates and address.
func (r *PostgresUserRepository) UpdateLocation(
	ctx context.Context,
	id string,
	latitude, longitude, address string,
) error {
	return r.update(ctx, id, map[string]any{
		"latitude":  latitude,
		"longitude": longitude,
		"address":   address,
	})
}

func (r *PostgresUserRepository) update(ctx context.Context, id string, fields map[string]any) error {
	query := r.sb.
		Update("users").
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id})
	for column, value := range fields {
		query = query.Set(column, value)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user %s", id)
	}

	return nil
}
