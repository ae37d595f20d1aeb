package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint  `gorm:"index;not null" json:"customer_id"`
	WorkerID   uint  `gorm:"index:idx_booking_worker_start;not null" json:"worker_id"`
	ServiceID  uint  `gorm:"not null" json:"service_id"`
	ShopID     *uint `json:"shop_id"`

	StartTime time.Time `gorm:"index:idx_booking_worker_start;not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Status string `gorm:"size:32;not null;index" json:"status"`

	PriceAtBooking    float64 `json:"price_at_booking"`
	DurationAtBooking int     `json:"duration_at_booking"`

	ActualStartTime *time.Time `json:"actual_start_time"`
	ActualEndTime   *time.Time `json:"actual_end_time"`
	CancelledAt     *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
