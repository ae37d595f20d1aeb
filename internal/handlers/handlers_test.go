package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-booking/internal/audit"
	"github.com/BruksfildServices01/service-booking/internal/domain/availability"
	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/handlers"
	"github.com/BruksfildServices01/service-booking/internal/infra/repository"
	"github.com/BruksfildServices01/service-booking/internal/models"
	"github.com/BruksfildServices01/service-booking/internal/routes"
	"github.com/BruksfildServices01/service-booking/internal/testfixtures"
	ucAvailability "github.com/BruksfildServices01/service-booking/internal/usecase/availability"
	ucBooking "github.com/BruksfildServices01/service-booking/internal/usecase/booking"
	ucSchedule "github.com/BruksfildServices01/service-booking/internal/usecase/schedule"
)

const secret = "handler-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type server struct {
	db     *gorm.DB
	router *gin.Engine
	svc    *models.Service
	rule   *models.AvailabilityRule
}

func newServer(t *testing.T) *server {
	t.Helper()

	db := testfixtures.NewSQLite(t)
	clock := testfixtures.NewClock(time.Time{})

	schedules := repository.NewScheduleGormRepository(db)
	bookings := repository.NewBookingGormRepository(db)
	ledger := repository.NewLedgerGormRepository(db)
	resolver := availability.NewResolver(schedules, schedules, schedules)

	rule := testfixtures.SeedWeekdayRule(t, db, testfixtures.WorkerID)
	svc := testfixtures.SeedWorkerService(t, db, testfixtures.WorkerID, 60)

	bookingDeps := ucBooking.Deps{
		Repo:     bookings,
		Resolver: resolver,
		Zones:    bookings,
		Ledger:   ledger,
		Now:      clock.NowFunc(),
	}

	r := gin.New()
	routes.RegisterRoutes(r, routes.Handlers{
		Health: handlers.NewHealthHandler(db, nil),
		Availability: handlers.NewAvailabilityHandler(ucAvailability.NewGetAvailability(
			resolver, bookings, bookings, bookings, nil,
			ucAvailability.Options{Now: clock.NowFunc()},
		)),
		Booking: handlers.NewBookingHandler(
			ucBooking.NewCreateBooking(bookingDeps),
			ucBooking.NewTransitionBooking(bookingDeps),
			ucBooking.NewGetBooking(bookingDeps),
			ucBooking.NewListBookings(bookingDeps),
			bookings,
		),
		Schedule: handlers.NewScheduleHandler(ucSchedule.Deps{
			Repo:     schedules,
			Bookings: bookings,
			Zones:    bookings,
		}),
		AuditLogs: handlers.NewAuditLogsHandler(audit.New(db)),
	}, routes.Options{
		JWTSecret:   secret,
		CORSOrigins: []string{"*"},
	})

	return &server{db: db, router: r, svc: svc, rule: rule}
}

func token(t *testing.T, id uint, role booking.Role) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  id,
		"role": string(role),
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func (s *server) do(t *testing.T, method, path, tok string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"error_code"`
	}
	decode(t, w, &body)
	return body.Code
}

func TestHealth(t *testing.T) {
	s := newServer(t)
	w := s.do(t, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAvailability_PublicAndValidated(t *testing.T) {
	s := newServer(t)

	path := fmt.Sprintf("/api/workers/%d/availability?from=2025-01-06&to=2025-01-06&service_id=%d",
		testfixtures.WorkerID, s.svc.ID)
	w := s.do(t, http.MethodGet, path, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		DurationMinutes int `json:"duration_minutes"`
		Days            []struct {
			Date  string   `json:"date"`
			Times []string `json:"times"`
		} `json:"days"`
	}
	decode(t, w, &body)
	if body.DurationMinutes != 60 || len(body.Days) != 1 {
		t.Fatalf("unexpected body %+v", body)
	}
	times := body.Days[0].Times
	if len(times) != 29 || times[0] != "09:00" || times[len(times)-1] != "16:00" {
		t.Fatalf("unexpected times %v", times)
	}

	cases := []struct {
		name string
		path string
		want int
		code string
	}{
		{"missing service", fmt.Sprintf("/api/workers/%d/availability?from=2025-01-06", testfixtures.WorkerID), http.StatusBadRequest, "missing_service_id"},
		{"bad worker", "/api/workers/abc/availability?from=2025-01-06&service_id=1", http.StatusBadRequest, "invalid_workerID"},
		{"bad range", fmt.Sprintf("/api/workers/%d/availability?from=2025-01-07&to=2025-01-06&service_id=%d", testfixtures.WorkerID, s.svc.ID), http.StatusBadRequest, "invalid_range"},
		{"unknown service", fmt.Sprintf("/api/workers/%d/availability?from=2025-01-06&service_id=999", testfixtures.WorkerID), http.StatusNotFound, "service_not_found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do(t, http.MethodGet, tc.path, "", nil)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, w.Code, w.Body.String())
			}
			if got := errorCode(t, w); got != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, got)
			}
		})
	}
}

func TestBookings_CreateConflictAndTransitions(t *testing.T) {
	s := newServer(t)
	customerTok := token(t, testfixtures.CustomerID, booking.RoleCustomer)
	workerTok := token(t, testfixtures.WorkerID, booking.RoleWorker)

	req := map[string]any{"service_id": s.svc.ID, "start_time": "2025-01-06T10:00:00Z"}

	if w := s.do(t, http.MethodPost, "/api/bookings", "", req); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	w := s.do(t, http.MethodPost, "/api/bookings", customerTok, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	decode(t, w, &created)
	if created.Status != string(booking.StatusConfirmed) {
		t.Fatalf("unexpected status %s", created.Status)
	}

	w = s.do(t, http.MethodPost, "/api/bookings", customerTok, req)
	if w.Code != http.StatusConflict || errorCode(t, w) != "slot_taken" {
		t.Fatalf("expected slot_taken conflict, got %d: %s", w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodPost, "/api/bookings", workerTok, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for worker booking, got %d", w.Code)
	}

	w = s.do(t, http.MethodPost, "/api/bookings", customerTok, map[string]any{"service_id": s.svc.ID, "start_time": "tomorrow"})
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "invalid_start_time" {
		t.Fatalf("expected invalid_start_time, got %d: %s", w.Code, w.Body.String())
	}

	bookingPath := fmt.Sprintf("/api/bookings/%d", created.ID)

	stranger := token(t, 999, booking.RoleCustomer)
	if w := s.do(t, http.MethodGet, bookingPath, stranger, nil); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-party, got %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, bookingPath, customerTok, nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for party, got %d", w.Code)
	}

	if w := s.do(t, http.MethodPost, bookingPath+"/complete", workerTok, nil); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 completing a confirmed booking, got %d", w.Code)
	}

	w = s.do(t, http.MethodPost, bookingPath+"/cancel", customerTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on cancel, got %d: %s", w.Code, w.Body.String())
	}
	decode(t, w, &created)
	if created.Status != string(booking.StatusCancelledByCustomer) {
		t.Fatalf("unexpected status %s", created.Status)
	}

	if w := s.do(t, http.MethodPost, bookingPath+"/no-show", workerTok, nil); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on terminal booking, got %d", w.Code)
	}
}

func TestBookings_List(t *testing.T) {
	s := newServer(t)
	testfixtures.SeedBooking(t, s.db, testfixtures.WorkerID, time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC), 60, string(booking.StatusConfirmed))
	testfixtures.SeedBooking(t, s.db, testfixtures.WorkerID, time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC), 60, string(booking.StatusConfirmed))

	workerTok := token(t, testfixtures.WorkerID, booking.RoleWorker)

	var list struct {
		Total int `json:"total"`
	}

	w := s.do(t, http.MethodGet, "/api/me/bookings?date=2025-01-06", workerTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	decode(t, w, &list)
	if list.Total != 1 {
		t.Fatalf("expected 1 booking on the date, got %d", list.Total)
	}

	w = s.do(t, http.MethodGet, "/api/me/bookings?year=2025&month=1", token(t, testfixtures.CustomerID, booking.RoleCustomer), nil)
	decode(t, w, &list)
	if list.Total != 2 {
		t.Fatalf("expected 2 bookings in the month, got %d", list.Total)
	}

	if w := s.do(t, http.MethodGet, "/api/me/bookings", workerTok, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a period, got %d", w.Code)
	}
}

func TestSchedule_RulesAndGuards(t *testing.T) {
	s := newServer(t)
	workerTok := token(t, testfixtures.WorkerID, booking.RoleWorker)

	w := s.do(t, http.MethodPost, "/api/me/availability/rules", workerTok, map[string]any{
		"start_date":       "2025-02-01",
		"end_date":         "2025-02-28",
		"daily_start_time": "10:00",
		"daily_end_time":   "14:00",
		"days_of_week":     []int{6},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodPost, "/api/me/availability/rules", workerTok, map[string]any{
		"start_date":       "2025-02-01",
		"end_date":         "2025-02-28",
		"daily_start_time": "14:00",
		"daily_end_time":   "10:00",
		"days_of_week":     []int{6},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted times, got %d", w.Code)
	}

	customerTok := token(t, testfixtures.CustomerID, booking.RoleCustomer)
	if w := s.do(t, http.MethodGet, "/api/me/availability/rules", customerTok, nil); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customers, got %d", w.Code)
	}

	var list struct {
		Total int `json:"total"`
	}
	decode(t, s.do(t, http.MethodGet, "/api/me/availability/rules", workerTok, nil), &list)
	if list.Total != 2 {
		t.Fatalf("expected 2 rules, got %d", list.Total)
	}

	testfixtures.SeedBooking(t, s.db, testfixtures.WorkerID, time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC), 60, string(booking.StatusConfirmed))

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/me/availability/rules/%d", s.rule.ID), workerTok, nil)
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "rule_has_bookings" {
		t.Fatalf("expected rule_has_bookings, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSchedule_OverridesAndOneOffs(t *testing.T) {
	s := newServer(t)
	workerTok := token(t, testfixtures.WorkerID, booking.RoleWorker)

	w := s.do(t, http.MethodPut, "/api/me/availability/overrides", workerTok, map[string]any{
		"date": "2025-01-07",
		"kind": "unavailable",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	path := fmt.Sprintf("/api/workers/%d/availability?from=2025-01-07&service_id=%d", testfixtures.WorkerID, s.svc.ID)
	var avail struct {
		Days []struct {
			Times []string `json:"times"`
		} `json:"days"`
	}
	decode(t, s.do(t, http.MethodGet, path, "", nil), &avail)
	if len(avail.Days) != 1 || len(avail.Days[0].Times) != 0 {
		t.Fatalf("expected no slots on unavailable date, got %+v", avail)
	}

	if w := s.do(t, http.MethodDelete, "/api/me/availability/overrides/2025-01-07", workerTok, nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodPost, "/api/me/availability/schedules", workerTok, map[string]any{
		"start_time": "2025-01-11T10:00:00Z",
		"end_time":   "2025-01-11T12:00:00Z",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var oneOff struct {
		ID uint `json:"id"`
	}
	decode(t, w, &oneOff)

	path = fmt.Sprintf("/api/workers/%d/availability?from=2025-01-11&service_id=%d", testfixtures.WorkerID, s.svc.ID)
	decode(t, s.do(t, http.MethodGet, path, "", nil), &avail)
	if len(avail.Days) != 1 || len(avail.Days[0].Times) != 5 {
		t.Fatalf("expected 5 slots in the one-off window, got %+v", avail)
	}

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/me/availability/schedules/%d", oneOff.ID), token(t, 777, booking.RoleWorker), nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for another worker, got %d", w.Code)
	}
	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/me/availability/schedules/%d", oneOff.ID), workerTok, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuditLogs_WorkersOnly(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodGet, "/api/me/audit-logs", token(t, testfixtures.CustomerID, booking.RoleCustomer), nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	w = s.do(t, http.MethodGet, "/api/me/audit-logs?page=0&limit=1000", token(t, testfixtures.WorkerID, booking.RoleWorker), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var page struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
	}
	decode(t, w, &page)
	if page.Page != 1 || page.Limit != 50 {
		t.Fatalf("expected normalised paging, got %+v", page)
	}
}
