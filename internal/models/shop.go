package models

import "time"

type Shop struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Timezone string `gorm:"size:64" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StaffAssociation links a worker to the shop they work for.
type StaffAssociation struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ShopID   uint `gorm:"not null;uniqueIndex:idx_staff_shop_worker" json:"shop_id"`
	WorkerID uint `gorm:"not null;uniqueIndex:idx_staff_shop_worker;index" json:"worker_id"`
	Active   bool `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
