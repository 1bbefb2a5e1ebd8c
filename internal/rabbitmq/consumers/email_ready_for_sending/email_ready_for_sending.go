package emailreadyforsending

import (
	"context"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/logging"
	"userapi/internal/core/domain/notification"
	"userapi/internal/core/services"
	sendemail "userapi/internal/core/services/send_email"
	"userapi/internal/rabbitmq"
	"userapi/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	service services.Service[sendemail.Input, sendemail.Result]
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	service services.Service[sendemail.Input, sendemail.Result],
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}

	return &Consumer{log: log, channel: channel, queue: queue, service: service}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			requeue := c.handle(context.Background(), delivery.Body)
			if requeue {
				c.Nack(delivery)
				continue
			}
			c.Ack(delivery)
		}
	}()
	return nil
}

// handle reports whether the message should be returned to the queue.
// Malformed messages are dropped, failed sends are retried once.
func (c *Consumer) handle(ctx context.Context, body []byte) (requeue bool) {
	message := &schema.Email{}
	if err := message.Unmarshal(body); err != nil {
		c.log.Error(ctx, "Could not unmarshal email message.", logging.Entry("err", err))
		return false
	}

	c.log.Info(ctx, "Got email ready for sending.", logging.Entry("subject", message.Subject))
	_, err := c.service.Run(ctx, sendemail.Input{
		Email: notification.Email{
			To:      message.To,
			Subject: message.Subject,
			Body:    message.Body,
		},
		QueuedAt: message.QueuedAt,
	})
	if err != nil {
		c.log.Error(
			ctx,
			"Could not send email, service returned an error.",
			logging.Entry("subject", message.Subject),
			logging.Entry("err", err),
		)
		return true
	}
	return false
}

func (c *Consumer) Ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}

// Nack requeues a message once. Redelivered messages are dropped.
func (c *Consumer) Nack(delivery amqp091.Delivery) {
	if err := delivery.Nack(false, !delivery.Redelivered); err != nil {
		c.log.Error(context.Background(), "Could not NACK AMQP message.", logging.Entry("err", err))
	}
}
