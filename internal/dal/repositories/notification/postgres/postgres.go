package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/gebeta/delivery/internal/dal/postgres"
	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/gebeta/delivery/internal/service/models/notification"
	"github.com/jackc/pgx/v5/pgtype"
)

// PostgresNotificationRepository represents a Postgres notification
// repository.
type PostgresNotificationRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresNotificationRepository creates a new Postgres notification
// repository.
func NewPostgresNotificationRepository(conn postgres.GenericConn) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert creates a notification and returns it with its id.
func (r *PostgresNotificationRepository) Insert(
	ctx context.Context,
	n notification.Notification,
) (notification.Notification, error) {
	sql, args, err := r.sb.
		Insert("notifications").
		Columns("user_id", "message").
		Values(n.UserID, n.Message).
		Suffix("RETURNING id, is_read, created_at").
		ToSql()
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	var createdAt pgtype.Timestamptz
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&n.ID, &n.IsRead, &createdAt); err != nil {
		return notification.Notification{}, fmt.Errorf("failed to insert notification: %w", err)
	}
	n.CreatedAt = createdAt.Time

	return n, nil
}

// List returns a user's notifications, newest first.
func (r *PostgresNotificationRepository) List(
	ctx context.Context,
	userID string,
) ([]notification.Notification, error) {
	sql, args, err := r.sb.
		Select("id", "user_id", "message", "is_read", "created_at").
		From("notifications").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var result []notification.Notification
	for rows.Next() {
		var (
			n         notification.Notification
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.CreatedAt = createdAt.Time
		result = append(result, n)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// MarkRead flips the read flag on one notification scoped to its owner.
func (r *PostgresNotificationRepository) MarkRead(
	ctx context.Context,
	userID string,
	id int64,
) error {
	sql, args, err := r.sb.
		Update("notifications").
		Set("is_read", true).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("notification %d", id)
	}

	return nil
}

// CountUnread returns how many unread notifications a user has.
func (r *PostgresNotificationRepository) CountUnread(
	ctx context.Context,
	userID string,
) (int64, error) {
	sql, args, err := r.sb.
		Select("COUNT(*)").
		From("notifications").
		Where(sq.Eq{"user_id": userID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var count int64
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}
