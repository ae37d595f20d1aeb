package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/httpresp"
	ucSchedule "github.com/BruksfildServices01/service-booking/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	createRule *ucSchedule.CreateRule
	updateRule *ucSchedule.UpdateRule
	deleteRule *ucSchedule.DeleteRule
	listRules  *ucSchedule.ListRules

	upsertOverride *ucSchedule.UpsertOverride
	deleteOverride *ucSchedule.DeleteOverride
	listOverrides  *ucSchedule.ListOverrides

	addOneOff    *ucSchedule.AddOneOff
	deleteOneOff *ucSchedule.DeleteOneOff
	listOneOffs  *ucSchedule.ListOneOffs
}

// NewScheduleHandler builds every schedule use case over deps.
func NewScheduleHandler(deps ucSchedule.Deps) *ScheduleHandler {
	return &ScheduleHandler{
		createRule: ucSchedule.NewCreateRule(deps),
		updateRule: ucSchedule.NewUpdateRule(deps),
		deleteRule: ucSchedule.NewDeleteRule(deps),
		listRules:  ucSchedule.NewListRules(deps),

		upsertOverride: ucSchedule.NewUpsertOverride(deps),
		deleteOverride: ucSchedule.NewDeleteOverride(deps),
		listOverrides:  ucSchedule.NewListOverrides(deps),

		addOneOff:    ucSchedule.NewAddOneOff(deps),
		deleteOneOff: ucSchedule.NewDeleteOneOff(deps),
		listOneOffs:  ucSchedule.NewListOneOffs(deps),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RuleRequest struct {
	StartDate      string `json:"start_date" binding:"required"`
	EndDate        string `json:"end_date" binding:"required"`
	DailyStartTime string `json:"daily_start_time" binding:"required"`
	DailyEndTime   string `json:"daily_end_time" binding:"required"`
	DaysOfWeek     []int  `json:"days_of_week" binding:"required"`
}

type OverrideRequest struct {
	Date      string `json:"date" binding:"required"`
	Kind      string `json:"kind" binding:"required"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type OneOffRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

func (r RuleRequest) input(c *gin.Context) ucSchedule.RuleInput {
	return ucSchedule.RuleInput{
		Actor:          actor(c),
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		DailyStartTime: r.DailyStartTime,
		DailyEndTime:   r.DailyEndTime,
		DaysOfWeek:     r.DaysOfWeek,
	}
}

// ======================================================
// RULES
// ======================================================

func (h *ScheduleHandler) ListRules(c *gin.Context) {
	rules, err := h.listRules.Execute(c.Request.Context(), actor(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, rules)
}

func (h *ScheduleHandler) CreateRule(c *gin.Context) {
	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	rule, err := h.createRule.Execute(c.Request.Context(), req.input(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, rule)
}

func (h *ScheduleHandler) UpdateRule(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	rule, err := h.updateRule.Execute(c.Request.Context(), id, req.input(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, rule)
}

func (h *ScheduleHandler) DeleteRule(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteRule.Execute(c.Request.Context(), actor(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// OVERRIDES
// ======================================================

func (h *ScheduleHandler) ListOverrides(c *gin.Context) {
	list, err := h.listOverrides.Execute(c.Request.Context(), actor(c), c.Query("from"), c.Query("to"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ScheduleHandler) UpsertOverride(c *gin.Context) {
	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	ov, err := h.upsertOverride.Execute(c.Request.Context(), ucSchedule.OverrideInput{
		Actor:     actor(c),
		Date:      req.Date,
		Kind:      req.Kind,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, ov)
}

func (h *ScheduleHandler) DeleteOverride(c *gin.Context) {
	if err := h.deleteOverride.Execute(c.Request.Context(), actor(c), c.Param("date")); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// ONE-OFF SCHEDULES
// ======================================================

func (h *ScheduleHandler) ListOneOffs(c *gin.Context) {
	list, err := h.listOneOffs.Execute(c.Request.Context(), actor(c), c.Query("from"), c.Query("to"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ScheduleHandler) AddOneOff(c *gin.Context) {
	var req OneOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	start, ok := parseRFC3339(c, "start_time", req.StartTime)
	if !ok {
		return
	}
	end, ok := parseRFC3339(c, "end_time", req.EndTime)
	if !ok {
		return
	}

	s, err := h.addOneOff.Execute(c.Request.Context(), ucSchedule.OneOffInput{
		Actor:     actor(c),
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, s)
}

func (h *ScheduleHandler) DeleteOneOff(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteOneOff.Execute(c.Request.Context(), actor(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}
