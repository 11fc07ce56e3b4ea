package notificationsvc

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gebeta/delivery/internal/dal/interfaces/inotificationrepo"
	"github.com/gebeta/delivery/internal/dal/interfaces/ioutboxrepo"
	"github.com/gebeta/delivery/internal/dal/interfaces/ipushqueue"
	"github.com/gebeta/delivery/internal/dal/interfaces/iuserrepo"
	"github.com/gebeta/delivery/internal/dal/postgres"
	"github.com/gebeta/delivery/internal/dal/rabbitmq"
	notificationrepo "github.com/gebeta/delivery/internal/dal/repositories/notification/postgres"
	outboxrepo "github.com/gebeta/delivery/internal/dal/repositories/outbox/postgres"
	pushqueuerepo "github.com/gebeta/delivery/internal/dal/repositories/push/rabbitmq"
	userrepo "github.com/gebeta/delivery/internal/dal/repositories/user/postgres"
	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/gebeta/delivery/internal/service/models/notification"
	"github.com/gebeta/delivery/internal/service/models/outbox"
	"github.com/spf13/viper"
)

// NotificationService owns in-app notifications and push dispatch. In-app
// rows are durable; pushes are best effort and flow through the push queue
// with the outbox as a fallback when the broker is unreachable.
type NotificationService struct {
	notificationRepo inotificationrepo.INotificationRepository
	userRepo         iuserrepo.IUserRepository
	pushQueue        ipushqueue.IPushQueue
	outboxRepo       ioutboxrepo.IOutboxRepository
}

// option is a function that configures the NotificationService.
type option func(*NotificationService)

// MustNewNotificationService creates a new NotificationService.
func MustNewNotificationService(opts ...option) *NotificationService {
	s := &NotificationService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient wires the Postgres-backed repositories.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *NotificationService) {
		s.notificationRepo = notificationrepo.NewPostgresNotificationRepository(pgClient.Pool())
		s.userRepo = userrepo.NewPostgresUserRepository(pgClient.Pool())
		s.outboxRepo = outboxrepo.NewOutboxRepository(pgClient.Pool())
	}
}

// WithRabbitMQClient wires the push queue publisher.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithRabbitMQClient(client *rabbitmq.Client) option {
	return func(s *NotificationService) {
		s.pushQueue = pushqueuerepo.NewPushRabbitMQRepository(client)
	}
}

// WithNotificationRepository sets the notification repository directly.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotificationRepository(repo inotificationrepo.INotificationRepository) option {
	return func(s *NotificationService) {
		s.notificationRepo = repo
	}
}

// WithUserRepository sets the user repository directly.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUserRepository(repo iuserrepo.IUserRepository) option {
	return func(s *NotificationService) {
		s.userRepo = repo
	}
}

// WithPushQueue sets the push queue directly.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPushQueue(queue ipushqueue.IPushQueue) option {
	return func(s *NotificationService) {
		s.pushQueue = queue
	}
}

// WithOutboxRepository sets the outbox repository directly.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOutboxRepository(repo ioutboxrepo.IOutboxRepository) option {
	return func(s *NotificationService) {
		s.outboxRepo = repo
	}
}

// Create stores an in-app notification for a user.
func (s *NotificationService) Create(ctx context.Context, userID, message string) (notification.Notification, error) {
	if message == "" {
		return notification.Notification{}, apperr.Validation("notification message must not be empty")
	}

	return s.notificationRepo.Insert(ctx, notification.Notification{
		UserID:  userID,
		Message: message,
	})
}

// List returns a user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID string) ([]notification.Notification, error) {
	return s.notificationRepo.List(ctx, userID)
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID string, id int64) error {
	return s.notificationRepo.MarkRead(ctx, userID, id)
}

// CountUnread returns the user's unread notification count.
func (s *NotificationService) CountUnread(ctx context.Context, userID string) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// SendPush enqueues a push notification for the user. A user without a
// registered push token is a silent no-op. If the queue is unreachable the
// job is parked in the outbox for the retry worker, so SendPush itself only
// fails when the job cannot be made durable at all.
func (s *NotificationService) SendPush(ctx context.Context, userID, title, body string, data map[string]any) error {
	usr, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return err
	}

	if usr.PushToken == "" {
		slog.Info("Skipping push, user has no push token", "user_id", userID)

		return nil
	}

	job := notification.PushJob{
		To:    usr.PushToken,
		Sound: "default",
		Title: title,
		Body:  body,
		Data:  data,
	}

	pubErr := s.pushQueue.Publish(ctx, job)
	if pubErr == nil {
		return nil
	}

	slog.Warn("Failed to publish push job, falling back to outbox", "user_id", userID, "error", pubErr)

	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}

	maxRetries := viper.GetInt("rabbitmq.outbox.max_retries")
	if maxRetries == 0 {
		maxRetries = 5
	}

	now := time.Now()

	return s.outboxRepo.Insert(ctx, outbox.Message{
		QueueName:   s.pushQueue.QueueName(),
		RoutingKey:  s.pushQueue.QueueName(),
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  maxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	})
}
