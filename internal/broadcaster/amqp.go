package broadcaster

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/tokenized/pkg/logger"
)

// AMQPConfig configures the vote event queue.
type AMQPConfig struct {
	URL        string
	Queue      string
	MaxRetries int
	RetryDelay time.Duration
}

// publisher is the part of *amqp.Channel used to publish.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool,
		msg amqp.Publishing) error
	Close() error
}

// AMQP publishes updates as JSON to a durable queue.
type AMQP struct {
	connection io.Closer
	channel    publisher
	queue      string
	lock       sync.Mutex
}

// DialAMQP connects to the broker, retrying MaxRetries times with RetryDelay
// between attempts.
func DialAMQP(ctx context.Context, config AMQPConfig) (*amqp.Connection, error) {
	attempts := config.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		var connection *amqp.Connection
		if connection, err = amqp.Dial(config.URL); err == nil {
			logger.Info(ctx, "Connected to AMQP broker")
			return connection, nil
		}

		if i == attempts-1 {
			break
		}

		logger.Warn(ctx, "Failed to connect to AMQP broker. Retrying in %s : %s",
			config.RetryDelay, err)

		select {
		case <-time.After(config.RetryDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, errors.Wrapf(err, "connect to AMQP after %d attempts", attempts)
}

// NewAMQP opens a channel on the connection and declares the queue.
func NewAMQP(connection *amqp.Connection, queue string) (*AMQP, error) {
	ch, err := connection.Channel()
	if err != nil {
		return nil, errors.Wrap(err, "open channel")
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		ch.Close()
		return nil, errors.Wrap(err, "declare queue")
	}

	result := newAMQP(ch, queue)
	result.connection = connection
	return result, nil
}

func newAMQP(ch publisher, queue string) *AMQP {
	return &AMQP{
		channel: ch,
		queue:   queue,
	}
}

// Announce publishes the update to the queue.
func (a *AMQP) Announce(ctx context.Context, u Update) error {
	b, err := json.Marshal(u)
	if err != nil {
		return errors.Wrap(err, "marshal update")
	}

	a.lock.Lock()
	defer a.lock.Unlock()

	if err := a.channel.PublishWithContext(ctx,
		"",
		a.queue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   time.Now(),
			Body:        b,
		},
	); err != nil {
		return errors.Wrap(err, "publish update")
	}

	return nil
}

// Close closes the channel and the connection it was opened on.
func (a *AMQP) Close() error {
	a.lock.Lock()
	defer a.lock.Unlock()

	err := a.channel.Close()
	if a.connection != nil {
		if cerr := a.connection.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}

	return err
}
