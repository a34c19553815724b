package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"carwash-booking/internal/data/entity"
	"carwash-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Preferences resolves a user's notification settings. A nil result means
// the user is unknown and defaults apply.
type Preferences interface {
	FindNotificationSettings(ctx context.Context, userID uuid.UUID) (*entity.NotificationSettings, error)
}

// Dispatcher turns booking lifecycle events into messages and delivers them
// on every channel in the background. Delivery is retried per channel with
// exponential backoff; final failures are only logged.
type Dispatcher struct {
	channels []Channel
	prefs    Preferences
	attempts int
	backoff  time.Duration
	timeout  time.Duration
	log      *zap.Logger

	// mu orders wg.Add in Dispatch before wg.Wait in Wait.
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	// drain is cancelled when Wait gives up on in-flight deliveries.
	drain context.Context
	abort context.CancelFunc
}

// NewDispatcher delivers on channels. prefs may be nil, in which case every
// message is delivered.
func NewDispatcher(config utils.NotifyConfig, prefs Preferences, log *zap.Logger, channels ...Channel) *Dispatcher {
	attempts := config.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	timeout := config.SendTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	drain, abort := context.WithCancel(context.Background())

	return &Dispatcher{
		channels: channels,
		prefs:    prefs,
		attempts: attempts,
		backoff:  config.RetryBackoff,
		timeout:  timeout,
		log:      log.With(zap.String("component", "notify")),
		drain:    drain,
		abort:    abort,
	}
}

func (d *Dispatcher) OnBookingCreated(booking *entity.Booking) {
	d.Dispatch(Message{
		UserID: booking.UserID,
		Title:  "Your booking is Confirmed",
		Body: fmt.Sprintf("%s for %s on %s at %s. Order number %s.",
			booking.ServiceTitle, booking.CarPlate,
			booking.ScheduledDate.Format(entity.DateLayout), booking.TimeSlot,
			booking.ReferenceNumber),
		Type:        entity.NotificationBookingCreated,
		RelatedType: "order",
		RelatedID:   booking.ID.String(),
	})
}

func (d *Dispatcher) OnBookingStatusChanged(booking *entity.Booking, from, to entity.BookingStatus) {
	d.Dispatch(Message{
		UserID:      booking.UserID,
		Title:       statusTitle(to),
		Body:        fmt.Sprintf("Order %s moved from %s to %s.", booking.ReferenceNumber, statusLabel(from), statusLabel(to)),
		Type:        entity.NotificationBookingStatus,
		RelatedType: "order",
		RelatedID:   booking.ID.String(),
	})
}

func (d *Dispatcher) OnBookingCancelled(booking *entity.Booking, reason string) {
	body := fmt.Sprintf("Order %s was cancelled. Reason: %s", booking.ReferenceNumber, reason)
	if booking.CancelledBy != nil && *booking.CancelledBy == entity.CancelledByProvider {
		body = fmt.Sprintf("Order %s could not be accepted by the provider. Reason: %s", booking.ReferenceNumber, reason)
	}

	d.Dispatch(Message{
		UserID:      booking.UserID,
		Title:       "Order Cancelled",
		Body:        body,
		Type:        entity.NotificationBookingCanceled,
		RelatedType: "order",
		RelatedID:   booking.ID.String(),
	})
}

// Dispatch queues msg on every channel and returns immediately.
func (d *Dispatcher) Dispatch(msg Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("Dispatcher closed, dropping notification",
			zap.String("user_id", msg.UserID.String()),
			zap.String("type", string(msg.Type)))
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		if !d.wanted(msg) {
			return
		}

		// the outer Add keeps the counter positive while these run
		for _, ch := range d.channels {
			d.wg.Add(1)
			go func(ch Channel) {
				defer d.wg.Done()
				d.deliver(ch, msg)
			}(ch)
		}
	}()
}

// wanted reports whether the recipient accepts msg. Lookup failures deliver anyway.
func (d *Dispatcher) wanted(msg Message) bool {
	if d.prefs == nil {
		return true
	}

	ctx, cancel := context.WithTimeout(d.drain, d.timeout)
	defer cancel()

	settings, err := d.prefs.FindNotificationSettings(ctx, msg.UserID)
	if err != nil {
		d.log.Warn("Failed to load notification settings, delivering anyway",
			zap.Error(err),
			zap.String("user_id", msg.UserID.String()))
		return true
	}
	if settings != nil && !settings.AllowsInApp(msg.Type) {
		d.log.Debug("Notification muted by user settings",
			zap.String("user_id", msg.UserID.String()),
			zap.String("type", string(msg.Type)))
		return false
	}

	return true
}

func (d *Dispatcher) deliver(ch Channel, msg Message) {
	log := d.log.With(
		zap.String("channel", ch.Name()),
		zap.String("user_id", msg.UserID.String()),
		zap.String("type", string(msg.Type)),
	)

	defer func() {
		if r := recover(); r != nil {
			log.Error("Notification channel panicked", zap.Any("panic", r))
		}
	}()

	delay := d.backoff
	for attempt := 1; attempt <= d.attempts; attempt++ {
		ctx, cancel := context.WithTimeout(d.drain, d.timeout)
		err := ch.Send(ctx, msg)
		cancel()

		if err == nil {
			return
		}

		log.Warn("Notification send failed",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", d.attempts))

		if attempt == d.attempts {
			break
		}

		select {
		case <-time.After(delay):
		case <-d.drain.Done():
			log.Error("Notification abandoned on shutdown")
			return
		}
		delay *= 2
	}

	log.Error("Notification dropped after retries")
}

// Wait stops accepting events and blocks until in-flight deliveries, retries
// included, finish. When ctx ends first the remaining deliveries are abandoned
// and ctx's error is returned.
func (d *Dispatcher) Wait(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		d.abort()
		return ctx.Err()
	}
}

func statusTitle(status entity.BookingStatus) string {
	switch status {
	case entity.BookingStatusPending:
		return "Order Placed"
	case entity.BookingStatusAccepted:
		return "Order Accepted"
	case entity.BookingStatusInProgress:
		return "Order In Progress"
	case entity.BookingStatusCompleted:
		return "Order Completed"
	case entity.BookingStatusCancelled:
		return "Order Cancelled"
	}
	panic(fmt.Sprintf("unhandled booking status %q", string(status)))
}

func statusLabel(status entity.BookingStatus) string {
	switch status {
	case entity.BookingStatusPending:
		return "pending"
	case entity.BookingStatusAccepted:
		return "accepted"
	case entity.BookingStatusInProgress:
		return "in progress"
	case entity.BookingStatusCompleted:
		return "completed"
	case entity.BookingStatusCancelled:
		return "cancelled"
	}
	panic(fmt.Sprintf("unhandled booking status %q", string(status)))
}
