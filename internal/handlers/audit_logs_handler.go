package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
	"github.com/nrbnayon/BarBar-sub000/internal/httpresp"
	"github.com/nrbnayon/BarBar-sub000/internal/middleware"
	"github.com/nrbnayon/BarBar-sub000/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)

	salon, err := salonForHost(h.db, hostID)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "No salon for this account.")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := h.db.Where("salon_id = ?", salon.ID)
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	var logs []models.AuditLog
	if err := q.Order("id DESC").Limit(limit).Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Could not list audit logs.")
		return
	}

	httpresp.List(c, "Audit logs loaded", logs)
}
