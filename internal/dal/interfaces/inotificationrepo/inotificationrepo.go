package inotificationrepo

import (
	"context"

	"github.com/gebeta/delivery/internal/service/models/notification"
)

// INotificationRepository defines in-app notification persistence.
type INotificationRepository interface {
	// Insert creates a notification and returns it with its id.
	Insert(ctx context.Context, n notification.Notification) (notification.Notification, error)

	// List returns a user's notifications, newest first.
	List(ctx context.Context, userID string) ([]notification.Notification, error)

	// MarkRead flips the read flag on one notification scoped to its owner.
	MarkRead(ctx context.Context, userID string, id int64) error

	// CountUnread returns how many unread notifications a user has.
	CountUnread(ctx context.Context, userID string) (int64, error)
}
