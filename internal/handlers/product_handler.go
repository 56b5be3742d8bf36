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

type ProductHandler struct {
	db *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// --------- Requests ---------

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
	Stock       int     `json:"stock" binding:"omitempty,min=0"`
	Category    string  `json:"category"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// --------- Host ---------

func (h *ProductHandler) List(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)

	salon, err := salonForHost(h.db, hostID)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "No salon for this account.")
		return
	}

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("salon_id = ?", salon.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var products []models.Product
	if err := q.Order("id ASC").Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_list_products", "Could not list products.")
		return
	}

	httpresp.List(c, "Products loaded", products)
}

func (h *ProductHandler) Create(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)

	salon, err := salonForHost(h.db, hostID)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "No salon for this account.")
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	product := models.Product{
		SalonID:     salon.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    strings.ToLower(req.Category),
		Active:      true,
	}

	if err := h.db.Create(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_create_product", "Could not create the product.")
		return
	}

	httpresp.Created(c, "Product created", product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	salon, err := salonForHost(h.db, hostID)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "No salon for this account.")
		return
	}

	var product models.Product
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salon.ID).
		First(&product).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "product_not_found", "Product not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_product", "Could not load the product.")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil && *req.Stock >= 0 {
		product.Stock = *req.Stock
	}
	if req.Category != nil {
		product.Category = strings.ToLower(*req.Category)
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := h.db.Save(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_update_product", "Could not save the product.")
		return
	}

	httpresp.OK(c, "Product updated", product)
}

// --------- Public ---------

func (h *ProductHandler) ListPublic(c *gin.Context) {
	slug := c.Param("slug")

	var salon models.Salon
	if err := h.db.Where("slug = ? AND status = ?", slug, "active").First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	var products []models.Product
	if err := h.db.
		Where("salon_id = ? AND active = true", salon.ID).
		Order("id ASC").
		Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_list_products", "Could not list products.")
		return
	}

	httpresp.List(c, "Products loaded", products)
}
