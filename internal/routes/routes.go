package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/handlers"
	"github.com/BruksfildServices01/service-booking/internal/middleware"
)

type Handlers struct {
	Health       *handlers.HealthHandler
	Availability *handlers.AvailabilityHandler
	Booking      *handlers.BookingHandler
	Schedule     *handlers.ScheduleHandler
	AuditLogs    *handlers.AuditLogsHandler
}

type Options struct {
	JWTSecret   string
	CORSOrigins []string
	Logger      *zap.Logger

	// BookingLimiter guards booking creation. Nil disables it.
	BookingLimiter gin.HandlerFunc
}

func RegisterRoutes(r *gin.Engine, h Handlers, opts Options) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(opts.Logger))
	}
	r.Use(middleware.CORSMiddleware(opts.CORSOrigins))

	r.GET("/health", h.Health.Get)

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC (optional token)
		// ------------------------------
		public := api.Group("/")
		public.Use(middleware.OptionalAuthMiddleware(opts.JWTSecret))
		{
			public.GET("/workers/:workerID/availability", h.Availability.Get)
		}

		// ------------------------------
		// SECURED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(opts.JWTSecret))
		{
			// ------------------------------
			// BOOKINGS
			// ------------------------------
			create := []gin.HandlerFunc{h.Booking.Create}
			if opts.BookingLimiter != nil {
				create = append([]gin.HandlerFunc{opts.BookingLimiter}, create...)
			}
			secured.POST("/bookings", create...)
			secured.GET("/bookings/:id", h.Booking.Get)
			secured.POST("/bookings/:id/start", h.Booking.Transition(booking.ActionStart))
			secured.POST("/bookings/:id/complete", h.Booking.Transition(booking.ActionComplete))
			secured.POST("/bookings/:id/cancel", h.Booking.Transition(booking.ActionCancel))
			secured.POST("/bookings/:id/no-show", h.Booking.Transition(booking.ActionNoShow))

			secured.GET("/me/bookings", h.Booking.List)

			// ------------------------------
			// SCHEDULE
			// ------------------------------
			secured.GET("/me/availability/rules", h.Schedule.ListRules)
			secured.POST("/me/availability/rules", h.Schedule.CreateRule)
			secured.PUT("/me/availability/rules/:id", h.Schedule.UpdateRule)
			secured.DELETE("/me/availability/rules/:id", h.Schedule.DeleteRule)

			secured.GET("/me/availability/overrides", h.Schedule.ListOverrides)
			secured.PUT("/me/availability/overrides", h.Schedule.UpsertOverride)
			secured.DELETE("/me/availability/overrides/:date", h.Schedule.DeleteOverride)

			secured.GET("/me/availability/schedules", h.Schedule.ListOneOffs)
			secured.POST("/me/availability/schedules", h.Schedule.AddOneOff)
			secured.DELETE("/me/availability/schedules/:id", h.Schedule.DeleteOneOff)

			secured.GET("/me/audit-logs", h.AuditLogs.List)
		}
	}
}
