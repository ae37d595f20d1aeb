package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

var (
	_ domain.Repository         = (*BookingGormRepository)(nil)
	_ availability.BookingStore = (*BookingGormRepository)(nil)
	_ availability.ZoneStore    = (*BookingGormRepository)(nil)
)

func isPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}

func errSlotTaken() error {
	return httperr.ErrConflict("slot_taken", "the worker already has a booking overlapping this time")
}

// --------------------------------------------------
// Service / Shop
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("service_not_found", "service not found")
		}
		return nil, err
	}
	return &svc, nil
}

func (r *BookingGormRepository) GetShop(
	ctx context.Context,
	id uint,
) (*models.Shop, error) {

	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("shop_not_found", "shop not found")
		}
		return nil, err
	}
	return &shop, nil
}

func (r *BookingGormRepository) GetActiveStaffAssociation(
	ctx context.Context,
	shopID uint,
	workerID uint,
) (*models.StaffAssociation, error) {

	var sa models.StaffAssociation
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND worker_id = ? AND active = ?", shopID, workerID, true).
		First(&sa).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("staff_association_not_found", "worker is not active staff of this shop")
		}
		return nil, err
	}
	return &sa, nil
}

// WorkerTimezone returns the timezone of the first shop the worker is active
// staff of, or "" for independent workers.
func (r *BookingGormRepository) WorkerTimezone(
	ctx context.Context,
	workerID uint,
) (string, error) {

	var shop models.Shop
	err := r.db.WithContext(ctx).
		Joins("JOIN staff_associations ON staff_associations.shop_id = shops.id").
		Where("staff_associations.worker_id = ? AND staff_associations.active = ?", workerID, true).
		Order("staff_associations.id ASC").
		First(&shop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return shop.Timezone, nil
}

// --------------------------------------------------
// Booking (create)
// --------------------------------------------------

// InsertIfNoOverlap serializes writers per worker with a transaction-scoped
// advisory lock on PostgreSQL. The exclusion constraint on bookings remains the
// backstop and surfaces as SQLSTATE 23P01.
func (r *BookingGormRepository) InsertIfNoOverlap(
	ctx context.Context,
	b *models.Booking,
) error {

	b.StartTime = b.StartTime.UTC()
	b.EndTime = b.EndTime.UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if isPostgres(tx) {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", int64(b.WorkerID)).Error; err != nil {
				return err
			}
		}

		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Where(
				"worker_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				b.WorkerID,
				domain.ActiveStatusValues(),
				b.EndTime,
				b.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errSlotTaken()
		}

		return tx.Create(b).Error
	})

	switch {
	case err == nil:
		return nil
	case httperr.IsKind(err, httperr.KindConflict):
		return err
	case httperr.IsExclusionConflict(err):
		return errSlotTaken()
	default:
		return fmt.Errorf("insert booking: %w", err)
	}
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("booking_not_found", "booking not found")
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) ApplyTransition(
	ctx context.Context,
	id uint,
	tr domain.Transition,
) (*models.Booking, error) {

	updates := map[string]any{"status": string(tr.To)}
	if tr.ActualStartTime != nil {
		updates["actual_start_time"] = tr.ActualStartTime.UTC()
	}
	if tr.ActualEndTime != nil {
		updates["actual_end_time"] = tr.ActualEndTime.UTC()
	}
	if tr.CancelledAt != nil {
		updates["cancelled_at"] = tr.CancelledAt.UTC()
	}

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status IN ?", id, tr.FromValues()).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("update booking status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, httperr.ErrInvalidState(
			"invalid_state",
			"booking changed state concurrently and can no longer be "+string(tr.Action),
		)
	}

	return r.GetBooking(ctx, id)
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveBookings(
	ctx context.Context,
	workerID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"worker_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			workerID,
			domain.ActiveStatusValues(),
			end.UTC(),
			start.UTC(),
		).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListForWorker(
	ctx context.Context,
	workerID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {
	return r.listForParty(ctx, "worker_id", workerID, start, end)
}

func (r *BookingGormRepository) ListForCustomer(
	ctx context.Context,
	customerID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {
	return r.listForParty(ctx, "customer_id", customerID, start, end)
}

func (r *BookingGormRepository) listForParty(
	ctx context.Context,
	column string,
	id uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where(column+" = ? AND start_time >= ? AND start_time < ?", id, start.UTC(), end.UTC()).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListOverdueConfirmed(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("status = ? AND end_time < ?", string(domain.StatusConfirmed), cutoff.UTC()).
		Order("end_time ASC").
		Limit(limit).
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
