package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-booking/internal/audit"
	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/httpresp"
	"github.com/BruksfildServices01/service-booking/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs *audit.Logger
}

func NewAuditLogsHandler(logs *audit.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	a := actor(c)
	if a.Role != booking.RoleWorker {
		httperr.FromError(c, httperr.ErrAuthorization("workers_only", "only workers have an audit log"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	f := audit.ListFilter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	if raw := c.Query("from"); raw != "" {
		if from, err := timezone.ParseDate(raw, time.UTC); err == nil {
			f.From = &from
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err := timezone.ParseDate(raw, time.UTC); err == nil {
			end := to.AddDate(0, 0, 1)
			f.To = &end
		}
	}

	logs, total, err := h.logs.List(c.Request.Context(), a.ID, f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "failed to list audit logs")
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
