package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/ticket-booking-api/internal/model"
)

// errBadEvent marks a message that can never be handled.  Such messages
// are dropped; other failures are requeued once.
var errBadEvent = errors.New("malformed event")

// NotificationWriter persists notifications.
type NotificationWriter interface {
	Create(ctx context.Context, n *model.Notification) error
}

// BookingReader resolves the user behind a booking for payment events.
type BookingReader interface {
	GetByID(ctx context.Context, id string) (*model.Booking, error)
}

// Worker consumes booking and payment events and writes one notification
// per event.  It is the only writer of the notifications table.
type Worker struct {
	url      string
	queue    string
	notes    NotificationWriter
	bookings BookingReader
	log      *logrus.Logger
	newID    func() string
}

func NewWorker(url, queue string, notes NotificationWriter, bookings BookingReader, log *logrus.Logger) *Worker {
	return &Worker{
		url:      url,
		queue:    queue,
		notes:    notes,
		bookings: bookings,
		log:      log,
		newID:    uuid.NewString,
	}
}

// Run connects to the broker and consumes until ctx is cancelled.  Lost
// connections are re-dialled with exponential backoff capped at 30s.
func (w *Worker) Run(ctx context.Context) error {
	if w.url == "" {
		return errors.New("notification worker: no broker url configured")
	}
	backoff := time.Second
	for {
		conn, err := amqp.Dial(w.url)
		if err != nil {
			w.log.WithError(err).Warnf("notification worker: dial failed; retrying in %s", backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = w.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.log.WithError(err).Warn("notification worker: consume loop ended; reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (w *Worker) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		w.log.WithError(err).Warn("notification worker: set QoS failed")
	}
	if _, err := declareQueue(ch, w.queue); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(w.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}
	w.log.WithField("queue", w.queue).Info("notification worker: consuming")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := w.Handle(ctx, d.Body); err != nil {
				retry := requeue(err, d.Redelivered)
				w.log.WithError(err).WithField("requeue", retry).Warn("notification worker: handle message failed")
				_ = d.Nack(false, retry)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Handle decodes one event and stores the matching notification.
func (w *Worker) Handle(ctx context.Context, body []byte) error {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: %v", errBadEvent, err)
	}
	if !knownType(ev.Type) {
		return fmt.Errorf("%w: unknown type %q", errBadEvent, ev.Type)
	}
	if ev.BookingID == "" {
		return fmt.Errorf("%w: no booking_id", errBadEvent)
	}

	userID := ev.UserID
	if userID == "" {
		b, err := w.bookings.GetByID(ctx, ev.BookingID)
		if err != nil {
			return fmt.Errorf("resolve booking %s: %w", ev.BookingID, err)
		}
		userID = b.UserID
	}

	n := &model.Notification{
		ID:      w.newID(),
		UserID:  userID,
		Type:    ev.Type,
		Message: ev.Message(),
	}
	if err := w.notes.Create(ctx, n); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}
	w.log.WithFields(logrus.Fields{"notification_id": n.ID, "user_id": userID, "type": ev.Type}).Info("notification stored")
	return nil
}

// requeue reports whether a failed delivery goes back on the queue: only
// well-formed events, and only on their first delivery.
func requeue(err error, redelivered bool) bool {
	return !redelivered && !errors.Is(err, errBadEvent)
}

// sleep waits for d or until ctx is done.  It reports whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
