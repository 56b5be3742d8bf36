package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
	"github.com/nrbnayon/BarBar-sub000/internal/httpresp"
	"github.com/nrbnayon/BarBar-sub000/internal/middleware"
	"github.com/nrbnayon/BarBar-sub000/internal/models"
	"github.com/nrbnayon/BarBar-sub000/internal/notify"
	"github.com/nrbnayon/BarBar-sub000/internal/timezone"
)

type SalonHandler struct {
	db     *gorm.DB
	notify *notify.Dispatcher
}

func NewSalonHandler(db *gorm.DB, notify *notify.Dispatcher) *SalonHandler {
	return &SalonHandler{db: db, notify: notify}
}

// salonForHost resolves the authenticated host's salon.
func salonForHost(db *gorm.DB, hostID uint) (*models.Salon, error) {
	var salon models.Salon
	if err := db.Where("host_id = ?", hostID).First(&salon).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

// --------- Requests ---------

type CreateSalonRequest struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Timezone string `json:"timezone"`
}

type UpdateSalonRequest struct {
	Name              *string `json:"name,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	Address           *string `json:"address,omitempty"`
	Timezone          *string `json:"timezone,omitempty"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes,omitempty"`
}

type SalonStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending active inactive rejected"`
}

// --------- Host ---------

// Create onboards the host's salon; it stays pending until an admin
// approves it.
func (h *SalonHandler) Create(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if _, err := salonForHost(h.db, hostID); err == nil {
		httperr.BadRequest(c, "salon_already_exists", "This account already has a salon.")
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))

	var count int64
	h.db.Model(&models.Salon{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "slug_already_exists", "This salon URL is taken.")
		return
	}

	tz := req.Timezone
	if !timezone.IsValid(tz) {
		tz = timezone.DefaultTimezone
	}

	salon := models.Salon{
		HostID:   hostID,
		Name:     req.Name,
		Slug:     slug,
		Phone:    req.Phone,
		Address:  req.Address,
		Timezone: tz,
		Status:   "pending",
	}

	if err := h.db.Create(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_create_salon", "Could not create the salon.")
		return
	}

	httpresp.Created(c, "Salon submitted for review", salon)
}

func (h *SalonHandler) GetMySalon(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)

	salon, err := salonForHost(h.db, hostID)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "No salon for this account.")
		return
	}

	httpresp.OK(c, "Salon loaded", salon)
}

func (h *SalonHandler) UpdateMySalon(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)

	salon, err := salonForHost(h.db, hostID)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "No salon for this account.")
		return
	}

	var req UpdateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		salon.Name = *req.Name
	}
	if req.Phone != nil {
		salon.Phone = *req.Phone
	}
	if req.Address != nil {
		salon.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone name.")
			return
		}
		salon.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Minimum advance must be zero or positive minutes.")
			return
		}
		salon.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Could not save the salon.")
		return
	}

	httpresp.OK(c, "Salon updated", salon)
}

// --------- Admin ---------

func (h *SalonHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var salon models.Salon
	if err := h.db.First(&salon, id).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	var req SalonStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	salon.Status = req.Status
	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Could not save the salon.")
		return
	}

	h.notify.Dispatch(notify.Event{
		Type:       notify.TypeSalonReviewed,
		ReceiverID: salon.HostID,
		Message:    "Your salon is now " + salon.Status,
		Metadata:   map[string]any{"salon_id": salon.ID},
	})

	httpresp.OK(c, "Salon status updated", salon)
}

// --------- Public ---------

func (h *SalonHandler) ListActive(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("status = ?", "active")
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ?", like, like)
	}

	var salons []models.Salon
	if err := q.Order("id ASC").Find(&salons).Error; err != nil {
		httperr.Internal(c, "failed_to_list_salons", "Could not list salons.")
		return
	}

	httpresp.List(c, "Salons loaded", salons)
}
