package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/service-booking/internal/models"
)

const TypeBookingCreated = "booking.created"

// Event is the envelope published for booking notifications. Consumers
// deduplicate on ID.
type Event struct {
	ID         string    `json:"event_id"`
	Type       string    `json:"event_type"`
	BookingID  uint      `json:"booking_id"`
	WorkerID   uint      `json:"worker_id"`
	CustomerID uint      `json:"customer_id"`
	ShopID     *uint     `json:"shop_id,omitempty"`
	ServiceID  uint      `json:"service_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewBookingCreated(b *models.Booking, now time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       TypeBookingCreated,
		BookingID:  b.ID,
		WorkerID:   b.WorkerID,
		CustomerID: b.CustomerID,
		ShopID:     b.ShopID,
		ServiceID:  b.ServiceID,
		StartTime:  b.StartTime.UTC(),
		EndTime:    b.EndTime.UTC(),
		OccurredAt: now.UTC(),
	}
}
