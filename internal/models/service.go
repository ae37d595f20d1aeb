package models

import "time"

const (
	OwnerTypeWorker = "worker"
	OwnerTypeShop   = "shop"

	DurationUnitMinutes = "minutes"
	DurationUnitHours   = "hours"
)

type Service struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	OwnerID   uint   `gorm:"index;not null" json:"owner_id"`
	OwnerType string `gorm:"size:10;not null;default:'worker'" json:"owner_type"`

	Name          string  `gorm:"size:100;not null" json:"name"`
	DurationValue int     `gorm:"not null" json:"duration_value"`
	DurationUnit  string  `gorm:"size:10;not null;default:'minutes'" json:"duration_unit"`
	Price         float64 `json:"price"`
	Active        bool    `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
