package booking

import (
	"time"

	"github.com/BruksfildServices01/service-booking/internal/models"
)

// DurationMinutes normalizes a service duration to minutes.
func DurationMinutes(svc *models.Service) int {
	if svc.DurationUnit == models.DurationUnitHours {
		return svc.DurationValue * 60
	}
	return svc.DurationValue
}

func ServiceDuration(svc *models.Service) time.Duration {
	return time.Duration(DurationMinutes(svc)) * time.Minute
}
