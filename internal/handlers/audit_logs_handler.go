package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
)

// ======================================================
// HANDLER (staff)
// ======================================================

type AuditLogsHandler struct {
	db    *gorm.DB
	clock timezone.Clock
}

func NewAuditLogsHandler(db *gorm.DB, clock timezone.Clock) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, clock: clock}
}

// GET /api/staff/audit-logs?action=&entity=&entity_id=&account_id=&from=&to=&page=&limit=
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	for param, column := range map[string]string{
		"action":     "action",
		"entity":     "entity",
		"entity_id":  "entity_id",
		"account_id": "account_id",
	} {
		if v := c.Query(param); v != "" {
			q = q.Where(column+" = ?", v)
		}
	}

	// from/to are salon calendar dates, inclusive
	if fromStr := c.Query("from"); fromStr != "" {
		from, err := timezone.ParseDate(h.clock, fromStr)
		if err != nil {
			httperr.Respond(c, httperr.Validation("invalid_date", "from"))
			return
		}
		q = q.Where("created_at >= ?", from.UTC())
	}

	if toStr := c.Query("to"); toStr != "" {
		to, err := timezone.ParseDate(h.clock, toStr)
		if err != nil {
			httperr.Respond(c, httperr.Validation("invalid_date", "to"))
			return
		}
		q = q.Where("created_at < ?", to.Add(24*time.Hour).UTC())
	}

	// --------------------------------------------------
	// Total + page
	// --------------------------------------------------

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, httperr.Unavailable(err))
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		httperr.Respond(c, httperr.Unavailable(err))
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
