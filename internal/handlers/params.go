package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/middleware"
)

// actor returns the authenticated caller. Routes using it sit behind
// AuthMiddleware.
func actor(c *gin.Context) booking.Actor {
	return c.MustGet(middleware.ContextActor).(booking.Actor)
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		httperr.BadRequest(c, "invalid_"+name, "invalid "+name)
		return 0, false
	}
	return uint(n), true
}

func uintQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		httperr.BadRequest(c, "missing_"+name, name+" is required")
		return 0, false
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		httperr.BadRequest(c, "invalid_"+name, "invalid "+name)
		return 0, false
	}
	return uint(n), true
}

func parseRFC3339(c *gin.Context, field, value string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+field, field+" must be RFC3339")
		return time.Time{}, false
	}
	return t, true
}
