package dto

import (
	"time"

	"github.com/BruksfildServices01/service-booking/internal/models"
)

type BookingDTO struct {
	ID         uint  `json:"id"`
	CustomerID uint  `json:"customer_id"`
	WorkerID   uint  `json:"worker_id"`
	ServiceID  uint  `json:"service_id"`
	ShopID     *uint `json:"shop_id,omitempty"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`

	PriceAtBooking    float64 `json:"price_at_booking"`
	DurationAtBooking int     `json:"duration_minutes"`

	ActualStartTime *time.Time `json:"actual_start_time,omitempty"`
	ActualEndTime   *time.Time `json:"actual_end_time,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
}

// NewBooking renders b with its times in loc. A nil loc keeps them as stored.
func NewBooking(b *models.Booking, loc *time.Location) BookingDTO {
	in := func(t time.Time) time.Time {
		if loc == nil {
			return t
		}
		return t.In(loc)
	}
	inPtr := func(t *time.Time) *time.Time {
		if t == nil {
			return nil
		}
		v := in(*t)
		return &v
	}

	return BookingDTO{
		ID:                b.ID,
		CustomerID:        b.CustomerID,
		WorkerID:          b.WorkerID,
		ServiceID:         b.ServiceID,
		ShopID:            b.ShopID,
		StartTime:         in(b.StartTime),
		EndTime:           in(b.EndTime),
		Status:            b.Status,
		PriceAtBooking:    b.PriceAtBooking,
		DurationAtBooking: b.DurationAtBooking,
		ActualStartTime:   inPtr(b.ActualStartTime),
		ActualEndTime:     inPtr(b.ActualEndTime),
		CancelledAt:       inPtr(b.CancelledAt),
	}
}

func NewBookings(list []models.Booking, loc *time.Location) []BookingDTO {
	out := make([]BookingDTO, 0, len(list))
	for i := range list {
		out = append(out, NewBooking(&list[i], loc))
	}
	return out
}
