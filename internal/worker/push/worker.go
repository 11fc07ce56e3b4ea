package push

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gebeta/delivery/internal/dal/rabbitmq"
	"github.com/gebeta/delivery/internal/service/models/notification"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
)

// sender delivers one push job to the provider.
type sender interface {
	Send(ctx context.Context, job notification.PushJob) error
}

// Worker consumes push jobs from the queue and delivers them through the
// push provider. Delivery is best effort: malformed jobs are dropped,
// provider failures are logged and the message acked, since a stale push is
// worse than a missing one.
type Worker struct {
	client *rabbitmq.Client
	sender sender
	queue  amqp.Queue
	stop   chan struct{}
	done   chan struct{}
}

// NewWorker creates a new push worker on the configured queue.
func NewWorker(client *rabbitmq.Client, sender sender) *Worker {
	queueName := viper.GetString("rabbitmq.push.queue_name")
	if queueName == "" {
		queueName = "delivery.notifications.push"
	}

	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       queueName,
		Durable:    true,
		AutoDelete: false,
		Exclusive:  false,
		NoWait:     false,
	})
	if err != nil {
		panic(err)
	}

	return &Worker{
		client: client,
		sender: sender,
		queue:  queue,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Run consumes push jobs until the context is cancelled or Shutdown is
// called.
func (w *Worker) Run(ctx context.Context) error {
	consumerTag := viper.GetString("rabbitmq.push.consumer_tag")
	if consumerTag == "" {
		consumerTag = "push-worker"
	}

	msgs, err := w.client.Consume(rabbitmq.ConsumeConfig{
		Queue:    w.queue.Name,
		Consumer: consumerTag,
	})
	if err != nil {
		return err
	}

	slog.Info("Push worker started", "queue", w.queue.Name, "consumer_tag", consumerTag)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(10)

	go func() {
		for {
			select {
			case <-w.stop:
				slog.Info("Stopping push worker")
				close(w.done)

				return
			case msg, ok := <-msgs:
				if !ok {
					slog.Info("Push message channel closed")
					close(w.done)

					return
				}

				g.Go(func() error {
					return w.processMessage(gctx, msg)
				})
			}
		}
	}()

	<-w.done
	if err := g.Wait(); err != nil {
		slog.Error("Error delivering push jobs", "error", err)
	}

	return nil
}

// processMessage delivers a single push job.
func (w *Worker) processMessage(ctx context.Context, msg amqp.Delivery) error {
	ctx, span := otel.Tracer("worker").Start(ctx, "PushWorker.processMessage")
	defer span.End()

	var job notification.PushJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		// drop the poison message without failing the group: an error here
		// would cancel the shared context and kill delivery of every
		// following job
		slog.Error("Failed to unmarshal push job, dropping", "delivery_tag", msg.DeliveryTag, "error", err)
		if err := msg.Nack(false, false); err != nil {
			slog.Error("Failed to nack message", "error", err)
		}

		return nil
	}

	if err := w.sender.Send(ctx, job); err != nil {
		slog.Error("Failed to deliver push", "message_id", msg.MessageId, "error", err)
	}

	if err := msg.Ack(false); err != nil {
		slog.Error("Failed to ack message", "error", err)

		return err
	}

	return nil
}

// Shutdown gracefully stops the worker.
func (w *Worker) Shutdown() error {
	slog.Info("Shutting down push worker")
	close(w.stop)

	select {
	case <-w.done:
		slog.Info("Push worker stopped")
	case <-time.After(10 * time.Second):
		slog.Warn("Push worker shutdown timeout")
	}

	return nil
}
