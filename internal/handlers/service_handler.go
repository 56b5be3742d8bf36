package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
	"github.com/nrbnayon/BarBar-sub000/internal/httpresp"
	"github.com/nrbnayon/BarBar-sub000/internal/middleware"
	"github.com/nrbnayon/BarBar-sub000/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	Price       float64 `json:"price" binding:"required"`
	MaxPerSlot  int     `json:"max_per_slot" binding:"omitempty,min=1"`
	CategoryID  *uint   `json:"category_id"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	MaxPerSlot  *int     `json:"max_per_slot,omitempty"`
	Active      *bool    `json:"active,omitempty"`
	CategoryID  *uint    `json:"category_id,omitempty"`
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// --------- Categories ---------

func (h *ServiceHandler) ListCategories(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)

	salon, err := salonForHost(h.db, hostID)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "No salon for this account.")
		return
	}

	var categories []models.ServiceCategory
	if err := h.db.
		Where("salon_id = ?", salon.ID).
		Order("id ASC").
		Find(&categories).Error; err != nil {
		httperr.Internal(c, "failed_to_list_categories", "Could not list categories.")
		return
	}

	httpresp.List(c, "Categories loaded", categories)
}

func (h *ServiceHandler) CreateCategory(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)

	salon, err := salonForHost(h.db, hostID)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "No salon for this account.")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	category := models.ServiceCategory{
		SalonID: salon.ID,
		Name:    strings.TrimSpace(req.Name),
	}

	if err := h.db.Create(&category).Error; err != nil {
		httperr.Internal(c, "failed_to_create_category", "Could not create the category.")
		return
	}

	httpresp.Created(c, "Category created", category)
}

// --------- Services ---------

func (h *ServiceHandler) List(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)

	salon, err := salonForHost(h.db, hostID)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "No salon for this account.")
		return
	}

	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("salon_id = ?", salon.ID)

	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Preload("Category").Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.List(c, "Services loaded", services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)

	salon, err := salonForHost(h.db, hostID)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "No salon for this account.")
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	maxPerSlot := req.MaxPerSlot
	if maxPerSlot == 0 {
		maxPerSlot = 1
	}

	service := models.Service{
		SalonID:     salon.ID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		MaxPerSlot:  maxPerSlot,
		Active:      true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create the service.")
		return
	}

	httpresp.Created(c, "Service created", service)
}

// Update edits price/duration/capacity going forward; existing appointments
// keep their denormalized copies.
func (h *ServiceHandler) Update(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	salon, err := salonForHost(h.db, hostID)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "No salon for this account.")
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salon.ID).
		First(&service).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Could not load the service.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil && *req.DurationMin > 0 {
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.MaxPerSlot != nil && *req.MaxPerSlot > 0 {
		service.MaxPerSlot = *req.MaxPerSlot
	}
	if req.Active != nil {
		service.Active = *req.Active
	}
	if req.CategoryID != nil {
		service.CategoryID = req.CategoryID
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not save the service.")
		return
	}

	httpresp.OK(c, "Service updated", service)
}

// --------- Public ---------

func (h *ServiceHandler) ListPublic(c *gin.Context) {
	slug := c.Param("slug")

	var salon models.Salon
	if err := h.db.Where("slug = ? AND status = ?", slug, "active").First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	var services []models.Service
	if err := h.db.
		Preload("Category").
		Where("salon_id = ? AND active = true", salon.ID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.List(c, "Services loaded", services)
}
