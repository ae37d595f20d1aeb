package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

const publishTimeout = 5 * time.Second

// Dispatcher hands events to a Publisher on a background goroutine.
// Publishing never blocks or fails the booking that triggered it.
type Dispatcher struct {
	pub   Publisher
	log   *zap.Logger
	now   func() time.Time
	queue chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

var _ booking.Notifier = (*Dispatcher)(nil)

func NewDispatcher(pub Publisher, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dispatcher{
		pub:   pub,
		log:   log,
		now:   time.Now,
		queue: make(chan Event, 256),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		err := d.pub.Publish(ctx, ev)
		cancel()

		if err != nil {
			d.log.Error("notification publish failed",
				zap.String("event_type", ev.Type),
				zap.Uint("booking_id", ev.BookingID),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) BookingCreated(b *models.Booking) {
	d.Dispatch(NewBookingCreated(b, d.now()))
}

func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("notification queue full, dropping event",
			zap.String("event_type", ev.Type),
			zap.Uint("booking_id", ev.BookingID),
		)
	}
}

// Close drains queued events and closes the publisher.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
	return d.pub.Close()
}
