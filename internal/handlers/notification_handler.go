package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
	"github.com/nrbnayon/BarBar-sub000/internal/httpresp"
	"github.com/nrbnayon/BarBar-sub000/internal/middleware"
	"github.com/nrbnayon/BarBar-sub000/internal/models"
)

type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var notifications []models.Notification
	q := h.db.Where("receiver_id = ?", userID)
	if c.Query("unread") == "true" {
		q = q.Where("read = false")
	}

	if err := q.Order("id DESC").Limit(100).Find(&notifications).Error; err != nil {
		httperr.Internal(c, "failed_to_list_notifications", "Could not list notifications.")
		return
	}

	httpresp.List(c, "Notifications loaded", notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	res := h.db.Model(&models.Notification{}).
		Where("id = ? AND receiver_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_update_notification", "Could not update the notification.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "notification_not_found", "Notification not found.")
		return
	}

	httpresp.OK(c, "Notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	if err := h.db.Model(&models.Notification{}).
		Where("receiver_id = ? AND read = false", userID).
		Update("read", true).Error; err != nil {
		httperr.Internal(c, "failed_to_update_notifications", "Could not update notifications.")
		return
	}

	httpresp.OK(c, "All notifications marked as read", nil)
}
