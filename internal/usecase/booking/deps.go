package booking

import (
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/audit"
	"github.com/BruksfildServices01/service-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
)

const DefaultContributionPoints int64 = 10

// Deps groups the collaborators shared by the booking use cases.
type Deps struct {
	Repo     domain.Repository
	Resolver *availability.Resolver
	Zones    availability.ZoneStore
	Ledger   domain.Ledger
	Notifier domain.Notifier
	Cache    availability.SlotCache
	Audit    *audit.Dispatcher
	Logger   *zap.Logger
	Now      func() time.Time

	ContributionPoints int64
}

func (d Deps) withDefaults() Deps {
	if d.Cache == nil {
		d.Cache = availability.NoopCache{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.ContributionPoints <= 0 {
		d.ContributionPoints = DefaultContributionPoints
	}
	return d
}
