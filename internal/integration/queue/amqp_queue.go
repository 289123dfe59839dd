package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/domain/state"
)

// attemptsHeader carries the number of failed deliveries of a message.
const attemptsHeader = "x-attempts"

const publishTimeout = 5 * time.Second

// amqpChannel is the part of *amqp091.Channel the queue uses.
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	QueueDeclarePassive(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Get(queue string, autoAck bool) (amqp091.Delivery, bool, error)
	Ack(tag uint64, multiple bool) error
	Nack(tag uint64, multiple, requeue bool) error
	Close() error
}

// AMQPQueue keeps pending deltas in a durable RabbitMQ queue. Deltas are
// fetched with basic.get and stay unacknowledged until Ack or Nack.
type AMQPQueue struct {
	mu           sync.Mutex
	conn         *amqp091.Connection
	channel      amqpChannel
	exchangeName string
	queueName    string
	deadName     string
	maxAttempts  int
}

// NewAMQPQueue dials url and declares the exchange, the queue and its
// dead-letter queue.
func NewAMQPQueue(url, exchangeName, queueName string, maxAttempts int) (*AMQPQueue, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	q := &AMQPQueue{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
		deadName:     deadLetterName(queueName),
		maxAttempts:  maxAttempts,
	}

	if err := q.setup(); err != nil {
		q.Close()
		return nil, fmt.Errorf("setup exchange and queues: %w", err)
	}

	return q, nil
}

func deadLetterName(queueName string) string {
	return queueName + ".dead"
}

func (q *AMQPQueue) setup() error {
	err := q.channel.ExchangeDeclare(
		q.exchangeName, // name
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

	// Routing key equals the queue name for both queues.
	for _, name := range []string{q.queueName, q.deadName} {
		if _, err := q.channel.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", name, err)
		}
		if err := q.channel.QueueBind(name, name, q.exchangeName, false, nil); err != nil {
			return fmt.Errorf("bind queue %s: %w", name, err)
		}
	}

	return nil
}

// Publish appends deltas to the queue in order.
func (q *AMQPQueue) Publish(ctx context.Context, deltas ...state.Delta) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, d := range deltas {
		if err := q.publish(ctx, q.queueName, d, 0); err != nil {
			return err
		}
	}
	return nil
}

func (q *AMQPQueue) publish(ctx context.Context, routingKey string, delta state.Delta, attempts int) error {
	body, err := json.Marshal(delta)
	if err != nil {
		return fmt.Errorf("marshal delta: %w", err)
	}
	return q.publishBody(ctx, routingKey, delta.ID.String(), body, attempts)
}

func (q *AMQPQueue) publishBody(ctx context.Context, routingKey, messageID string, body []byte, attempts int) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err := q.channel.PublishWithContext(
		ctx,
		q.exchangeName, // exchange
		routingKey,     // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    messageID,
			Timestamp:    time.Now(),
			Headers:      amqp091.Table{attemptsHeader: int32(attempts)},
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish delta: %w", err)
	}
	return nil
}

// Consume fetches up to max deltas without acknowledging them.
func (q *AMQPQueue) Consume(ctx context.Context, max int) ([]adapter.QueuedDelta, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var out []adapter.QueuedDelta
	for len(out) < max {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		delivery, ok, err := q.channel.Get(q.queueName, false)
		if err != nil {
			return out, fmt.Errorf("get delivery: %w", err)
		}
		if !ok {
			break
		}

		var delta state.Delta
		if err := json.Unmarshal(delivery.Body, &delta); err != nil {
			slog.WarnContext(ctx, "Burying malformed delivery", "error", err, "tag", delivery.DeliveryTag)
			if err := q.bury(ctx, delivery); err != nil {
				return out, err
			}
			continue
		}

		out = append(out, adapter.QueuedDelta{
			Delta:    delta,
			Attempts: attemptsFrom(delivery.Headers),
			Receipt:  strconv.FormatUint(delivery.DeliveryTag, 10),
		})
	}
	return out, nil
}

// bury copies an undecodable delivery to the dead-letter queue and
// acknowledges the original.
func (q *AMQPQueue) bury(ctx context.Context, delivery amqp091.Delivery) error {
	attempts := attemptsFrom(delivery.Headers)
	if err := q.publishBody(ctx, q.deadName, delivery.MessageId, delivery.Body, attempts); err != nil {
		_ = q.channel.Nack(delivery.DeliveryTag, false, true)
		return err
	}
	if err := q.channel.Ack(delivery.DeliveryTag, false); err != nil {
		return fmt.Errorf("ack delivery: %w", err)
	}
	return nil
}

// Ack acknowledges processed deltas.
func (q *AMQPQueue) Ack(ctx context.Context, msgs ...adapter.QueuedDelta) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, m := range msgs {
		tag, err := strconv.ParseUint(m.Receipt, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid receipt %q: %w", m.Receipt, err)
		}
		if err := q.channel.Ack(tag, false); err != nil {
			return fmt.Errorf("ack delivery: %w", err)
		}
	}
	return nil
}

// Nack republishes the delta with its attempt count increased, to the
// dead-letter queue once attempts are exhausted, and acknowledges the
// original delivery.
func (q *AMQPQueue) Nack(ctx context.Context, msg adapter.QueuedDelta) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	tag, err := strconv.ParseUint(msg.Receipt, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid receipt %q: %w", msg.Receipt, err)
	}

	attempts := msg.Attempts + 1
	target := q.queueName
	if attempts >= q.maxAttempts {
		target = q.deadName
		slog.WarnContext(ctx, "Delta moved to dead-letter queue",
			"delta_id", msg.Delta.ID,
			"attempts", attempts,
		)
	}

	if err := q.publish(ctx, target, msg.Delta, attempts); err != nil {
		// Hand the delivery back to the broker unchanged.
		_ = q.channel.Nack(tag, false, true)
		return err
	}
	if err := q.channel.Ack(tag, false); err != nil {
		return fmt.Errorf("ack delivery: %w", err)
	}
	return nil
}

// Len returns the number of ready messages in the queue.
func (q *AMQPQueue) Len(ctx context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	info, err := q.channel.QueueDeclarePassive(q.queueName, true, false, false, false, nil)
	if err != nil {
		return 0, fmt.Errorf("inspect queue: %w", err)
	}
	return int64(info.Messages), nil
}

// Close closes the channel and the connection.
func (q *AMQPQueue) Close() error {
	if q.channel != nil {
		q.channel.Close()
	}
	if q.conn != nil {
		return q.conn.Close()
	}
	return nil
}

// attemptsFrom reads the attempts header, accepting the integer widths
// brokers and clients use.
func attemptsFrom(headers amqp091.Table) int {
	switch v := headers[attemptsHeader].(type) {
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return int(v)
	}
	return 0
}

var _ adapter.DeltaQueue = (*AMQPQueue)(nil)
