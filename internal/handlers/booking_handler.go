package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/dto"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/httpresp"
	"github.com/BruksfildServices01/service-booking/internal/timezone"
	ucBooking "github.com/BruksfildServices01/service-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create     *ucBooking.CreateBooking
	transition *ucBooking.TransitionBooking
	get        *ucBooking.GetBooking
	list       *ucBooking.ListBookings
	zones      providerZones
}

type providerZones interface {
	booking.ShopDirectory
	booking.WorkerZones
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	transition *ucBooking.TransitionBooking,
	get *ucBooking.GetBooking,
	list *ucBooking.ListBookings,
	zones providerZones,
) *BookingHandler {
	return &BookingHandler{
		create:     create,
		transition: transition,
		get:        get,
		list:       list,
		zones:      zones,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	WorkerID  uint   `json:"worker_id"`
	StartTime string `json:"start_time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	start, ok := parseRFC3339(c, "start_time", req.StartTime)
	if !ok {
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		Actor:     actor(c),
		ServiceID: req.ServiceID,
		WorkerID:  req.WorkerID,
		StartTime: start,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.NewBooking(b, h.location(c.Request.Context(), b.WorkerID, b.ShopID)))
}

// ======================================================
// GET
// ======================================================

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	b, err := h.get.Execute(c.Request.Context(), actor(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.NewBooking(b, h.location(c.Request.Context(), b.WorkerID, b.ShopID)))
}

// ======================================================
// TRANSITIONS
// ======================================================

// Transition returns a handler applying action to the booking in the path.
func (h *BookingHandler) Transition(action booking.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id")
		if !ok {
			return
		}

		b, err := h.transition.Execute(c.Request.Context(), ucBooking.TransitionBookingInput{
			Actor:     actor(c),
			BookingID: id,
			Action:    action,
		})
		if err != nil {
			httperr.FromError(c, err)
			return
		}

		httpresp.OK(c, dto.NewBooking(b, h.location(c.Request.Context(), b.WorkerID, b.ShopID)))
	}
}

// ======================================================
// LIST (GET /api/me/bookings?date= | ?year=&month=)
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	in := ucBooking.ListBookingsInput{
		Actor: actor(c),
		Date:  c.Query("date"),
	}

	if in.Date == "" {
		year, errY := strconv.Atoi(c.Query("year"))
		month, errM := strconv.Atoi(c.Query("month"))
		if errY != nil || errM != nil {
			httperr.BadRequest(c, "invalid_period", "date or year and month are required")
			return
		}
		in.Year, in.Month = year, month
	}

	list, err := h.list.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	loc := timezone.Location(timezone.Default())
	if in.Actor.Role == booking.RoleWorker {
		loc = h.location(c.Request.Context(), in.Actor.ID, nil)
	}

	httpresp.List(c, dto.NewBookings(list, loc))
}

// location renders booking times in the zone they were booked in. Lookup
// errors fall back to the default zone.
func (h *BookingHandler) location(ctx context.Context, workerID uint, shopID *uint) *time.Location {
	if h.zones == nil {
		return timezone.Location(timezone.Default())
	}
	loc, err := booking.ProviderLocation(ctx, h.zones, h.zones, workerID, shopID)
	if err != nil {
		return timezone.Location(timezone.Default())
	}
	return loc
}
