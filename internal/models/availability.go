package models

import (
	"time"

	"gorm.io/datatypes"
)

// AvailabilityRule is a recurring weekly work-time template.
// DaysOfWeek holds ISO weekday numbers (1=Monday..7=Sunday).
type AvailabilityRule struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	WorkerID uint `gorm:"index;not null" json:"worker_id"`

	StartDate datatypes.Date `gorm:"type:date;not null" json:"start_date"`
	EndDate   datatypes.Date `gorm:"type:date;not null" json:"end_date"`

	DailyStartTime string                   `gorm:"size:5;not null" json:"daily_start_time"`
	DailyEndTime   string                   `gorm:"size:5;not null" json:"daily_end_time"`
	DaysOfWeek     datatypes.JSONSlice[int] `json:"days_of_week"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OverrideKind string

const (
	OverrideUnavailable OverrideKind = "unavailable"
	OverrideAvailable   OverrideKind = "available"
)

// AvailabilityOverride replaces everything else for one calendar date.
type AvailabilityOverride struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	WorkerID     uint           `gorm:"not null;uniqueIndex:idx_override_worker_date" json:"worker_id"`
	OverrideDate datatypes.Date `gorm:"type:date;not null;uniqueIndex:idx_override_worker_date" json:"override_date"`

	Kind      OverrideKind `gorm:"size:20;not null" json:"kind"`
	StartTime string       `gorm:"size:5" json:"start_time,omitempty"`
	EndTime   string       `gorm:"size:5" json:"end_time,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OneOffSchedule is an extra working interval outside the weekly rules.
type OneOffSchedule struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	WorkerID uint `gorm:"index;not null" json:"worker_id"`

	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDate stores the calendar date of t, ignoring its zone.
func NewDate(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// DateIn returns the calendar date d as midnight in loc.
func DateIn(d datatypes.Date, loc *time.Location) time.Time {
	y, m, day := time.Time(d).Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}
