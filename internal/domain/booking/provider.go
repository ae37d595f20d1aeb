package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
	"github.com/BruksfildServices01/service-booking/internal/timezone"
)

type ShopDirectory interface {
	GetShop(ctx context.Context, id uint) (*models.Shop, error)
}

// ServiceDirectory is the part of Repository needed to decide who delivers a
// service and where.
type ServiceDirectory interface {
	ShopDirectory
	GetService(ctx context.Context, id uint) (*models.Service, error)
	GetActiveStaffAssociation(ctx context.Context, shopID uint, workerID uint) (*models.StaffAssociation, error)
}

type WorkerZones interface {
	WorkerTimezone(ctx context.Context, workerID uint) (string, error)
}

// LoadActiveService treats inactive services as missing.
func LoadActiveService(ctx context.Context, dir ServiceDirectory, id uint) (*models.Service, error) {
	svc, err := dir.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, httperr.ErrNotFound("service_not_found", "service not found")
	}
	return svc, nil
}

// ResolveProvider returns the worker delivering svc and the shop it is booked
// through. A worker-owned service is always delivered by its owner and has no
// shop. A shop-owned service needs a worker with an active association to
// that shop.
func ResolveProvider(
	ctx context.Context,
	dir ServiceDirectory,
	svc *models.Service,
	workerID uint,
) (uint, *uint, error) {

	switch svc.OwnerType {
	case models.OwnerTypeWorker:
		if workerID != 0 && workerID != svc.OwnerID {
			return 0, nil, httperr.ErrValidation("worker_mismatch", "service is not offered by this worker")
		}
		return svc.OwnerID, nil, nil

	case models.OwnerTypeShop:
		if workerID == 0 {
			return 0, nil, httperr.ErrValidation("worker_required", "worker_id is required for shop services")
		}
		if _, err := dir.GetActiveStaffAssociation(ctx, svc.OwnerID, workerID); err != nil {
			if httperr.IsKind(err, httperr.KindNotFound) {
				return 0, nil, httperr.ErrInvariant("cannot_determine_shop", "worker has no active association with the shop offering this service")
			}
			return 0, nil, err
		}
		shopID := svc.OwnerID
		return workerID, &shopID, nil
	}

	return 0, nil, httperr.ErrInvariant("cannot_determine_shop", "unknown service owner type "+svc.OwnerType)
}

// ProviderLocation is the zone a booking's wall-clock times live in: the
// shop's for shop bookings, otherwise the worker's.
func ProviderLocation(
	ctx context.Context,
	shops ShopDirectory,
	zones WorkerZones,
	workerID uint,
	shopID *uint,
) (*time.Location, error) {

	if shopID != nil {
		shop, err := shops.GetShop(ctx, *shopID)
		if err != nil {
			return nil, err
		}
		return timezone.Location(shop.Timezone), nil
	}

	tz, err := zones.WorkerTimezone(ctx, workerID)
	if err != nil {
		return nil, err
	}
	return timezone.Location(tz), nil
}
