package emailqueue

import (
	"context"
	"time"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/logging"
	"userapi/internal/core/domain/notification"
	"userapi/internal/rabbitmq"
	"userapi/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

type publisher interface {
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp091.Publishing,
	) error
}

// RabbitMQ hands emails over to the mailer worker instead of sending them in the request.
type RabbitMQ struct {
	log     logging.Logger
	channel publisher
	queue   string
	now     func() time.Time
}

func NewRabbitMQ(log logging.Logger, channel *rabbitmq.Channel, queue string, now func() time.Time) *RabbitMQ {
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return newRabbitMQ(log, channel, queue, now)
}

func newRabbitMQ(log logging.Logger, channel publisher, queue string, now func() time.Time) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &RabbitMQ{log: log, channel: channel, queue: queue, now: now}
}

func (s *RabbitMQ) SendEmail(ctx context.Context, email notification.Email) error {
	message := schema.Email{
		To:       email.To,
		Subject:  email.Subject,
		Body:     email.Body,
		QueuedAt: s.now().UTC(),
	}
	body, err := message.Marshal()
	if err != nil {
		return err
	}

	err = s.channel.PublishWithContext(ctx, "", s.queue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    message.QueuedAt,
		Body:         body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("queue", s.queue))
		return err
	}
	s.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("queue", s.queue),
		logging.Entry("subject", email.Subject),
	)
	return nil
}
