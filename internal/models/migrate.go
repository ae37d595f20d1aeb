package models

import "gorm.io/gorm"

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Shop{},
		&StaffAssociation{},
		&Service{},
		&AvailabilityRule{},
		&AvailabilityOverride{},
		&OneOffSchedule{},
		&Booking{},
		&ContributionBalance{},
		&CancellationCounter{},
		&AuditLog{},
	)
}
