package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
	"github.com/nrbnayon/BarBar-sub000/internal/httpresp"
	"github.com/nrbnayon/BarBar-sub000/internal/middleware"
	"github.com/nrbnayon/BarBar-sub000/internal/models"
)

type CartHandler struct {
	db *gorm.DB
}

func NewCartHandler(db *gorm.DB) *CartHandler {
	return &CartHandler{db: db}
}

type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"omitempty,min=1"`
}

type AddWishlistItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

func (h *CartHandler) activeProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := h.db.Where("id = ? AND active = true", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// --------- Cart ---------

func (h *CartHandler) GetCart(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var items []models.CartItem
	if err := h.db.
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		httperr.Internal(c, "failed_to_list_cart", "Could not load the cart.")
		return
	}

	total := 0.0
	for _, it := range items {
		total += it.Product.Price * float64(it.Quantity)
	}

	httpresp.OK(c, "Cart loaded", gin.H{
		"items": items,
		"total": total,
	})
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	if _, err := h.activeProduct(req.ProductID); err != nil {
		httperr.NotFound(c, "product_not_found", "Product not found.")
		return
	}

	// Upsert on the (user, product) unique index; re-adding bumps the
	// stored quantity instead of erroring.
	item := models.CartItem{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}

	if err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]any{"quantity": req.Quantity}),
	}).Create(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_add_cart_item", "Could not add the item.")
		return
	}

	httpresp.Created(c, "Item added to cart", item)
}

func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	res := h.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.CartItem{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_remove_cart_item", "Could not remove the item.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "cart_item_not_found", "Cart item not found.")
		return
	}

	httpresp.OK(c, "Item removed from cart", nil)
}

// --------- Wishlist ---------

func (h *CartHandler) GetWishlist(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var items []models.WishlistItem
	if err := h.db.
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		httperr.Internal(c, "failed_to_list_wishlist", "Could not load the wishlist.")
		return
	}

	httpresp.List(c, "Wishlist loaded", items)
}

func (h *CartHandler) AddToWishlist(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req AddWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if _, err := h.activeProduct(req.ProductID); err != nil {
		httperr.NotFound(c, "product_not_found", "Product not found.")
		return
	}

	item := models.WishlistItem{
		UserID:    userID,
		ProductID: req.ProductID,
	}

	if err := h.db.Create(&item).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "already_in_wishlist", "Product is already in the wishlist.")
			return
		}
		httperr.Internal(c, "failed_to_add_wishlist_item", "Could not add the item.")
		return
	}

	httpresp.Created(c, "Item added to wishlist", item)
}

func (h *CartHandler) RemoveFromWishlist(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	res := h.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.WishlistItem{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_remove_wishlist_item", "Could not remove the item.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "wishlist_item_not_found", "Wishlist item not found.")
		return
	}

	httpresp.OK(c, "Item removed from wishlist", nil)
}
