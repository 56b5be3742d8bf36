package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/nrbnayon/BarBar-sub000/internal/domain/booking"
	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
	"github.com/nrbnayon/BarBar-sub000/internal/httpresp"
	"github.com/nrbnayon/BarBar-sub000/internal/middleware"
	"github.com/nrbnayon/BarBar-sub000/internal/models"
)

type BusinessHoursHandler struct {
	db *gorm.DB
}

func NewBusinessHoursHandler(db *gorm.DB) *BusinessHoursHandler {
	return &BusinessHoursHandler{db: db}
}

type BusinessDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	IsOff     bool   `json:"is_off"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type BusinessHoursUpdateRequest struct {
	Days []BusinessDayConfig `json:"days" binding:"required"`
}

func (h *BusinessHoursHandler) Get(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)

	salon, err := salonForHost(h.db, hostID)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "No salon for this account.")
		return
	}

	var hours []models.BusinessHour
	if err := h.db.
		Where("salon_id = ?", salon.ID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		httperr.Internal(c, "failed_to_get_business_hours", "Could not load business hours.")
		return
	}

	httpresp.OK(c, "Business hours loaded", hours)
}

func (h *BusinessHoursHandler) Update(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)

	salon, err := salonForHost(h.db, hostID)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "No salon for this account.")
		return
	}

	var req BusinessHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	// open days must carry a well-formed window
	for _, d := range req.Days {
		if d.IsOff {
			continue
		}
		start, err := domain.ParseClock(d.StartTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_time", "Times must be HH:MM.")
			return
		}
		end, err := domain.ParseClock(d.EndTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_time", "Times must be HH:MM.")
			return
		}
		if end <= start {
			httperr.BadRequest(c, "invalid_window", "Closing time must be after opening time.")
			return
		}
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("salon_id = ?", salon.ID).Delete(&models.BusinessHour{}).Error; err != nil {
			return err
		}

		var toCreate []models.BusinessHour
		for _, d := range req.Days {
			toCreate = append(toCreate, models.BusinessHour{
				SalonID:   salon.ID,
				Weekday:   d.Weekday,
				IsOff:     d.IsOff,
				StartTime: d.StartTime,
				EndTime:   d.EndTime,
			})
		}

		if len(toCreate) > 0 {
			if err := tx.Create(&toCreate).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		httperr.Internal(c, "failed_to_save_business_hours", "Could not save business hours.")
		return
	}

	httpresp.OK(c, "Business hours saved", nil)
}
