package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/audit"
	"github.com/BruksfildServices01/service-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/service-booking/internal/db"
	"github.com/BruksfildServices01/service-booking/internal/domain/availability"
	"github.com/BruksfildServices01/service-booking/internal/handlers"
	"github.com/BruksfildServices01/service-booking/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/service-booking/internal/infra/repository"
	"github.com/BruksfildServices01/service-booking/internal/jobs"
	"github.com/BruksfildServices01/service-booking/internal/logging"
	"github.com/BruksfildServices01/service-booking/internal/middleware"
	"github.com/BruksfildServices01/service-booking/internal/notify"
	"github.com/BruksfildServices01/service-booking/internal/routes"
	"github.com/BruksfildServices01/service-booking/internal/timezone"
	ucAvailability "github.com/BruksfildServices01/service-booking/internal/usecase/availability"
	ucBooking "github.com/BruksfildServices01/service-booking/internal/usecase/booking"
	ucSchedule "github.com/BruksfildServices01/service-booking/internal/usecase/schedule"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	timezone.SetDefault(cfg.DefaultTimezone)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := dbpkg.NewDB(cfg, logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	var (
		rdb       *redis.Client
		slotCache availability.SlotCache = availability.NoopCache{}
		limiter   gin.HandlerFunc
	)
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		slotCache = cache.NewRedisSlotCache(rdb, cfg.AvailabilityCacheTTL, logger)
		if cfg.BookingRateLimit > 0 {
			limiter = middleware.NewRedisRateLimiter(
				rdb, cfg.BookingRateLimit, cfg.BookingRateWindow, "rl:bookings", logger,
			).Middleware()
		}
	} else {
		logger.Warn("REDIS_ADDR not set, slot cache and rate limit disabled")
	}

	var publisher notify.Publisher
	if brokers := notify.SplitBrokers(cfg.KafkaBrokers); len(brokers) > 0 {
		publisher = notify.NewKafkaPublisher(brokers, cfg.KafkaTopicBookings)
	} else {
		publisher = notify.NewLogPublisher(logger)
	}
	notifier := notify.NewDispatcher(publisher, logger)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	schedules := infraRepo.NewScheduleGormRepository(db)
	bookings := infraRepo.NewBookingGormRepository(db)
	ledger := infraRepo.NewLedgerGormRepository(db)

	resolver := availability.NewResolver(schedules, schedules, schedules)

	// ======================================================
	// USE CASES
	// ======================================================
	getAvailabilityUC := ucAvailability.NewGetAvailability(
		resolver,
		bookings,
		bookings,
		bookings,
		slotCache,
		ucAvailability.Options{MaxDays: cfg.MaxAvailabilityDays, Logger: logger},
	)

	bookingDeps := ucBooking.Deps{
		Repo:               bookings,
		Resolver:           resolver,
		Zones:              bookings,
		Ledger:             ledger,
		Notifier:           notifier,
		Cache:              slotCache,
		Audit:              auditDispatcher,
		Logger:             logger,
		ContributionPoints: cfg.ContributionPoints,
	}
	transitionUC := ucBooking.NewTransitionBooking(bookingDeps)

	scheduleDeps := ucSchedule.Deps{
		Repo:     schedules,
		Bookings: bookings,
		Zones:    bookings,
		Cache:    slotCache,
		Audit:    auditDispatcher,
	}

	// ======================================================
	// JOBS
	// ======================================================
	scheduler := jobs.NewScheduler(logger)
	sweeper := jobs.NewNoShowSweeper(bookings, transitionUC, cfg.NoShowGrace, nil, logger)
	if err := scheduler.AddSweeper(cfg.NoShowSweepSpec, sweeper, time.Minute); err != nil {
		logger.Fatal("no-show sweeper", zap.Error(err))
	}
	scheduler.Start()

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Handlers{
		Health:       handlers.NewHealthHandler(db, rdb),
		Availability: handlers.NewAvailabilityHandler(getAvailabilityUC),
		Booking: handlers.NewBookingHandler(
			ucBooking.NewCreateBooking(bookingDeps),
			transitionUC,
			ucBooking.NewGetBooking(bookingDeps),
			ucBooking.NewListBookings(bookingDeps),
			bookings,
		),
		Schedule:  handlers.NewScheduleHandler(scheduleDeps),
		AuditLogs: handlers.NewAuditLogsHandler(auditLogger),
	}, routes.Options{
		JWTSecret:      cfg.JWTSecret,
		CORSOrigins:    cfg.AllowedOrigins(),
		Logger:         logger,
		BookingLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	scheduler.Stop(shutdownCtx)
	auditDispatcher.Close()
	if err := notifier.Close(); err != nil {
		logger.Error("notifier close", zap.Error(err))
	}
}
