package rabbitmq

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"userapi/internal/core/domain/logging"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Connection redials the broker whenever the underlying connection drops.
type Connection struct {
	mu    sync.RWMutex
	conn  *amqp.Connection
	log   logging.Logger
	delay time.Duration
}

func Dial(url string, log logging.Logger, reconnectDelay time.Duration) (*Connection, error) {
	if log == nil {
		return nil, fmt.Errorf("log argument must not be nil")
	}
	if reconnectDelay <= 0 {
		return nil, fmt.Errorf("reconnect delay must be positive, got %s", reconnectDelay)
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	connection := &Connection{conn: conn, log: log, delay: reconnectDelay}
	go connection.watch(url)
	return connection, nil
}

func (c *Connection) current() *amqp.Connection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn
}

func (c *Connection) watch(url string) {
	for {
		reason, ok := <-c.current().NotifyClose(make(chan *amqp.Error, 1))
		if !ok {
			c.log.Info(context.Background(), "RabbitMQ connection closed.")
			return
		}

		c.log.Warning(context.Background(), "RabbitMQ connection lost.", logging.Entry("reason", reason.Error()))
		retryUntilSuccess(c.log, c.delay, "reconnect", func() error {
			conn, err := amqp.Dial(url)
			if err != nil {
				return err
			}
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
			return nil
		})
	}
}

func (c *Connection) Close() error {
	return c.current().Close()
}

// Channel opens a channel that is reopened after broker-side closes
// until Close is called on it.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.current().Channel()
	if err != nil {
		return nil, err
	}

	channel := &Channel{channel: ch, log: c.log, delay: c.delay}
	go channel.watch(c)
	return channel, nil
}

type Channel struct {
	mu      sync.RWMutex
	channel *amqp.Channel
	closed  atomic.Bool
	log     logging.Logger
	delay   time.Duration
}

func (ch *Channel) current() *amqp.Channel {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return ch.channel
}

func (ch *Channel) watch(conn *Connection) {
	for {
		reason, ok := <-ch.current().NotifyClose(make(chan *amqp.Error, 1))
		if !ok || ch.IsClosed() {
			ch.closed.Store(true)
			return
		}

		ch.log.Warning(context.Background(), "RabbitMQ channel lost.", logging.Entry("reason", reason.Error()))
		retryUntilSuccess(ch.log, ch.delay, "reopen channel", func() error {
			reopened, err := conn.current().Channel()
			if err != nil {
				return err
			}
			ch.mu.Lock()
			ch.channel = reopened
			ch.mu.Unlock()
			return nil
		})
	}
}

// DeclareQueue declares a durable queue bound to the default exchange under its own name.
func (ch *Channel) DeclareQueue(name string) error {
	if name == "" {
		return fmt.Errorf("queue name must not be empty")
	}
	_, err := ch.current().QueueDeclare(name, true, false, false, false, nil)
	return err
}

func (ch *Channel) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp.Publishing,
) error {
	return ch.current().PublishWithContext(ctx, exchange, key, mandatory, immediate, msg)
}

// IsClosed reports whether Close was called.
func (ch *Channel) IsClosed() bool {
	return ch.closed.Load()
}

func (ch *Channel) Close() error {
	if !ch.closed.CompareAndSwap(false, true) {
		return amqp.ErrClosed
	}
	return ch.current().Close()
}

// Consume delivers messages from queue with manual acknowledgement.
// The returned channel survives channel reopening and ends only after Close.
func (ch *Channel) Consume(queue string) (<-chan amqp.Delivery, error) {
	if queue == "" {
		return nil, fmt.Errorf("queue name must not be empty")
	}
	deliveries := make(chan amqp.Delivery)

	go func() {
		defer close(deliveries)
		for !ch.IsClosed() {
			var source <-chan amqp.Delivery
			retryUntilSuccess(ch.log, ch.delay, "consume "+queue, func() error {
				if ch.IsClosed() {
					return nil
				}
				var err error
				source, err = ch.current().Consume(queue, "", false, false, false, false, nil)
				return err
			})
			if source == nil {
				break
			}

			for delivery := range source {
				deliveries <- delivery
			}

			// The closed flag may be set shortly after the source ends.
			time.Sleep(ch.delay)
		}
		ch.log.Info(context.Background(), "Channel is closed, stop consuming.", logging.Entry("queue", queue))
	}()

	return deliveries, nil
}

// retryUntilSuccess calls attempt every delay until it returns nil and
// reports how many attempts were made.
func retryUntilSuccess(log logging.Logger, delay time.Duration, action string, attempt func() error) int {
	for attempts := 1; ; attempts++ {
		err := attempt()
		if err == nil {
			if attempts > 1 {
				log.Info(context.Background(), "RabbitMQ "+action+" succeeded.", logging.Entry("attempts", attempts))
			}
			return attempts
		}
		log.Error(
			context.Background(),
			"RabbitMQ "+action+" failed.",
			logging.Entry("err", err),
			logging.Entry("attempt", attempts),
		)
		time.Sleep(delay)
	}
}
