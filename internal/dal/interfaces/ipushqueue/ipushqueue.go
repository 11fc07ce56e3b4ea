package ipushqueue

import (
	"context"

	"github.com/gebeta/delivery/internal/service/models/notification"
)

// IPushQueue enqueues push jobs for asynchronous delivery.
type IPushQueue interface {
	// Publish places a push job on the queue.
	Publish(ctx context.Context, job notification.PushJob) error

	// QueueName returns the queue jobs are published to, for outbox
	// bookkeeping.
	QueueName() string
}
