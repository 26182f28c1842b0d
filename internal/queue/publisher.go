package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Publisher sends domain events to the broker.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// NopPublisher drops every event.  Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// DefaultDialTimeout bounds connecting and the AMQP handshake of a
// publish.  Publishing runs on the request path after the write has
// committed.
const DefaultDialTimeout = 2 * time.Second

// AMQPPublisher publishes events to a durable RabbitMQ queue.  A
// connection is dialled per publish; event volume is one message per
// write request.
type AMQPPublisher struct {
	url         string
	queue       string
	log         *logrus.Logger
	dialTimeout time.Duration
}

// NewPublisher returns an AMQPPublisher, or a NopPublisher when url is
// empty.
func NewPublisher(url, queue string, log *logrus.Logger) Publisher {
	if url == "" {
		return NopPublisher{}
	}
	return &AMQPPublisher{url: url, queue: queue, log: log, dialTimeout: DefaultDialTimeout}
}

// dial connects with a timeout that is the smaller of the configured dial
// timeout and what is left of ctx.
func (p *AMQPPublisher) dial(ctx context.Context) (*amqp.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timeout := p.dialTimeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	return amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
}

// Publish marshals ev and sends it through the default exchange with the
// queue name as routing key.  Messages are persistent.  Errors are logged
// and returned so the caller can choose to ignore them.
func (p *AMQPPublisher) Publish(ctx context.Context, ev Event) error {
	fields := logrus.Fields{"event": ev.Type, "booking_id": ev.BookingID, "queue": p.queue}

	conn, err := p.dial(ctx)
	if err != nil {
		p.log.WithFields(fields).WithError(err).Warn("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.WithFields(fields).WithError(err).Warn("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := declareQueue(ch, p.queue); err != nil {
		p.log.WithFields(fields).WithError(err).Warn("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         ev.Type,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		p.log.WithFields(fields).WithError(err).Warn("rabbitmq: publish failed")
		return err
	}
	p.log.WithFields(fields).Debug("event published")
	return nil
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
}
