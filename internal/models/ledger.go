package models

import "time"

type ContributionBalance struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Points    int64     `gorm:"not null;default:0" json:"points"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CancellationCounter counts cancellations per user and calendar month (YYYY-MM).
type CancellationCounter struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Month     string    `gorm:"primaryKey;size:7" json:"month"`
	Count     int       `gorm:"not null;default:0" json:"count"`
	UpdatedAt time.Time `json:"updated_at"`
}
