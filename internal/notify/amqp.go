package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AMQPChannel publishes messages to a durable RabbitMQ queue consumed by the
// push notification worker.
type AMQPChannel struct {
	conn  *amqp.Connection
	queue string
	log   *zap.Logger

	mu sync.Mutex
	ch *amqp.Channel
}

func NewAMQPChannel(url, queue string, log *zap.Logger) (*AMQPChannel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	c := &AMQPChannel{
		conn:  conn,
		queue: queue,
		log:   log.With(zap.String("channel", "amqp")),
	}

	if err := c.open(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return c, nil
}

func (c *AMQPChannel) Name() string { return "amqp" }

// open (re)creates the AMQP channel and declares the queue. Callers hold mu
// or own c exclusively.
func (c *AMQPChannel) open() error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		c.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		_ = ch.Close()
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	c.ch = ch
	return nil
}

func (c *AMQPChannel) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// a failed publish closes the channel; reopen on the next attempt
	if c.ch == nil || c.ch.IsClosed() {
		if c.conn.IsClosed() {
			return amqp.ErrClosed
		}
		if err := c.open(); err != nil {
			return err
		}
	}

	err = c.ch.PublishWithContext(ctx,
		"",      // default exchange
		c.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}

	return nil
}

func (c *AMQPChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ch != nil {
		_ = c.ch.Close()
	}
	return c.conn.Close()
}
