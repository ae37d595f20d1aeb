package testfixtures

import (
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-booking/internal/models"
)

const (
	CustomerID uint = 100
	WorkerID   uint = 200
)

// SeedWeekdayRule stores a Mon-Fri 09:00-17:00 rule for January 2025.
func SeedWeekdayRule(tb testing.TB, db *gorm.DB, workerID uint) *models.AvailabilityRule {
	tb.Helper()

	rule := &models.AvailabilityRule{
		WorkerID:       workerID,
		StartDate:      models.NewDate(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:        models.NewDate(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)),
		DailyStartTime: "09:00",
		DailyEndTime:   "17:00",
		DaysOfWeek:     datatypes.JSONSlice[int]{1, 2, 3, 4, 5},
	}
	if err := db.Create(rule).Error; err != nil {
		tb.Fatalf("seed rule: %v", err)
	}
	return rule
}

// SeedWorkerService stores an active service owned by workerID.
func SeedWorkerService(tb testing.TB, db *gorm.DB, workerID uint, minutes int) *models.Service {
	tb.Helper()

	svc := &models.Service{
		OwnerID:       workerID,
		OwnerType:     models.OwnerTypeWorker,
		Name:          "Haircut",
		DurationValue: minutes,
		DurationUnit:  models.DurationUnitMinutes,
		Price:         35,
		Active:        true,
	}
	if err := db.Create(svc).Error; err != nil {
		tb.Fatalf("seed service: %v", err)
	}
	return svc
}

// SeedShop stores a shop with workerID as active staff and a one-hour service
// owned by the shop.
func SeedShop(tb testing.TB, db *gorm.DB, workerID uint, tz string) (*models.Shop, *models.Service) {
	tb.Helper()

	shop := &models.Shop{Name: "Downtown", Timezone: tz}
	if err := db.Create(shop).Error; err != nil {
		tb.Fatalf("seed shop: %v", err)
	}
	if err := db.Create(&models.StaffAssociation{ShopID: shop.ID, WorkerID: workerID, Active: true}).Error; err != nil {
		tb.Fatalf("seed staff: %v", err)
	}

	svc := &models.Service{
		OwnerID:       shop.ID,
		OwnerType:     models.OwnerTypeShop,
		Name:          "Massage",
		DurationValue: 1,
		DurationUnit:  models.DurationUnitHours,
		Price:         80,
		Active:        true,
	}
	if err := db.Create(svc).Error; err != nil {
		tb.Fatalf("seed shop service: %v", err)
	}
	return shop, svc
}

// SeedBooking stores a booking directly, bypassing overlap checks.
func SeedBooking(tb testing.TB, db *gorm.DB, workerID uint, start time.Time, minutes int, status string) *models.Booking {
	tb.Helper()

	b := &models.Booking{
		CustomerID:        CustomerID,
		WorkerID:          workerID,
		ServiceID:         1,
		StartTime:         start.UTC(),
		EndTime:           start.Add(time.Duration(minutes) * time.Minute).UTC(),
		Status:            status,
		DurationAtBooking: minutes,
	}
	if err := db.Create(b).Error; err != nil {
		tb.Fatalf("seed booking: %v", err)
	}
	return b
}
