// Package amqp consumes bot-originated transactions from RabbitMQ.
package amqp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"finflow-ledger/internal/util"
)

// Handler processes one decoded message.
type Handler func(ctx context.Context, msg *TransactionMessage) error

type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

func NewClient(url, exchangeName, queueName string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// Routing key is the queue name
	if err := c.channel.QueueBind(c.queueName, c.queueName, c.exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	// One message in flight; a requeued message must not overtake the rest
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}
	return nil
}

// ConsumeTransactions delivers messages to handler until ctx is done or the
// channel closes.
func (c *Client) ConsumeTransactions(ctx context.Context, handler Handler) error {
	msgs, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack (we want manual ack)
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	slog.InfoContext(ctx, "Started consuming transaction messages", "queue", c.queueName)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping message consumption", "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}
			handleDelivery(ctx, delivery, handler)
		}
	}
}

// Disposition is what happens to a delivery once its handler returns.
type Disposition int

const (
	Ack Disposition = iota
	Reject
	Requeue
)

// Decide maps a handler result onto a disposition. Messages that can never
// succeed are rejected; store failures are retried.
func Decide(err error) Disposition {
	switch {
	case err == nil:
		return Ack
	case errors.Is(err, util.ErrInvalidInput), errors.Is(err, util.ErrNotFound), errors.Is(err, util.ErrUnauthorized):
		return Reject
	default:
		return Requeue
	}
}

func handleDelivery(ctx context.Context, delivery amqp091.Delivery, handler Handler) {
	msg, err := TransactionMessageFromJSON(delivery.Body)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to unmarshal message", "error", err)
		_ = delivery.Nack(false, false) // reject and don't requeue
		return
	}

	err = handler(ctx, msg)
	switch Decide(err) {
	case Ack:
		_ = delivery.Ack(false)
		slog.InfoContext(ctx, "Processed transaction message", "phone", msg.Phone)
	case Reject:
		slog.WarnContext(ctx, "Rejected transaction message", "error", err, "phone", msg.Phone)
		_ = delivery.Nack(false, false)
	case Requeue:
		op, userID, _ := util.StoreFailure(err)
		slog.ErrorContext(ctx, "Failed to handle message",
			"error", err,
			"op", op,
			"user_id", userID,
			"phone", msg.Phone)
		_ = delivery.Nack(false, true)
	}
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// exponentialBackoff returns the wait before reconnect attempt n, capped at 30s.
func exponentialBackoff(attempt int) time.Duration {
	if attempt >= 5 {
		return 30 * time.Second
	}
	return time.Duration(1<<attempt) * time.Second
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, amqp091.ErrClosed) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, s := range []string{"connection", "channel closed", "eof"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// Dialer opens a consuming client.
type Dialer func() (*Client, error)

// Run consumes with handler, redialling with backoff whenever the broker
// connection drops. It returns when ctx is done or on a non-connection error.
func Run(ctx context.Context, dial Dialer, handler Handler) error {
	for attempt := 0; ; {
		client, err := dial()
		if err == nil {
			attempt = 0
			err = client.ConsumeTransactions(ctx, handler)
			client.Close()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !isConnectionError(err) {
			return err
		}

		wait := exponentialBackoff(attempt)
		attempt++
		slog.WarnContext(ctx, "AMQP connection lost, reconnecting", "error", err, "wait", wait, "attempt", attempt)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}
