package rabbitmqrepo

import (
	"context"
	"encoding/json"

	"github.com/gebeta/delivery/internal/dal/rabbitmq"
	"github.com/gebeta/delivery/internal/service/models/notification"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
)

// PushRabbitMQRepository publishes push jobs to the push delivery queue.
type PushRabbitMQRepository struct {
	client *rabbitmq.Client
	queue  amqp.Queue
}

func NewPushRabbitMQRepository(client *rabbitmq.Client) *PushRabbitMQRepository {
	queueName := viper.GetString("rabbitmq.push.queue_name")
	if queueName == "" {
		queueName = "delivery.notifications.push"
	}

	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       queueName,
		Durable:    true,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		panic(err)
	}

	return &PushRabbitMQRepository{
		client: client,
		queue:  queue,
	}
}

// QueueName returns the declared queue name.
func (r *PushRabbitMQRepository) QueueName() string {
	return r.queue.Name
}

// Publish enqueues one push job.
func (r *PushRabbitMQRepository) Publish(_ context.Context, job notification.PushJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}

	return r.client.Channel().Publish(
		"",
		r.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   uuid.NewString(),
			Body:        payload,
		},
	)
}
