package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-booking/internal/dto"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/httpresp"
	ucAvailability "github.com/BruksfildServices01/service-booking/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	getAvailability *ucAvailability.GetAvailability
}

func NewAvailabilityHandler(getAvailability *ucAvailability.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{getAvailability: getAvailability}
}

// ======================================================
// GET /api/workers/:workerID/availability
// ======================================================

func (h *AvailabilityHandler) Get(c *gin.Context) {
	workerID, ok := uintParam(c, "workerID")
	if !ok {
		return
	}
	serviceID, ok := uintQuery(c, "service_id")
	if !ok {
		return
	}

	from := c.Query("from")
	to := c.DefaultQuery("to", from)
	if from == "" {
		httperr.BadRequest(c, "missing_from", "from is required")
		return
	}

	res, err := h.getAvailability.Execute(c.Request.Context(), ucAvailability.GetAvailabilityInput{
		WorkerID:  workerID,
		ServiceID: serviceID,
		From:      from,
		To:        to,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out := dto.AvailabilityDTO{
		WorkerID:        res.WorkerID,
		ServiceID:       res.ServiceID,
		DurationMinutes: res.DurationMinutes,
		Timezone:        res.Timezone,
		Days:            make([]dto.DayAvailabilityDTO, 0, len(res.Days)),
	}
	for _, d := range res.Days {
		out.Days = append(out.Days, dto.NewDayAvailability(d.Date, d.Slots))
	}

	httpresp.OK(c, out)
}
