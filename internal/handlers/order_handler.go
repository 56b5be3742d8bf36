package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
	"github.com/nrbnayon/BarBar-sub000/internal/httpresp"
	"github.com/nrbnayon/BarBar-sub000/internal/middleware"
	"github.com/nrbnayon/BarBar-sub000/internal/models"
	"github.com/nrbnayon/BarBar-sub000/internal/notify"
	"github.com/nrbnayon/BarBar-sub000/internal/payment"
)

type OrderHandler struct {
	db       *gorm.DB
	gateway  payment.Gateway
	notifier *notify.Dispatcher
}

func NewOrderHandler(db *gorm.DB, gateway payment.Gateway, notifier *notify.Dispatcher) *OrderHandler {
	return &OrderHandler{db: db, gateway: gateway, notifier: notifier}
}

type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,oneof=cash visa mastercard paypal"`
	CardToken     string `json:"card_token"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed completed cancelled"`
}

// Checkout turns the caller's cart into an order. All items must belong to
// one salon; stock is decremented under row locks so two checkouts cannot
// oversell the same product.
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.PaymentMethod != "cash" && req.CardToken == "" {
		httperr.BadRequest(c, "missing_card_token", "Card payments require a card token.")
		return
	}

	var items []models.CartItem
	if err := h.db.
		Preload("Product").
		Where("user_id = ?", userID).
		Find(&items).Error; err != nil {
		httperr.Internal(c, "failed_to_list_cart", "Could not load the cart.")
		return
	}
	if len(items) == 0 {
		httperr.BadRequest(c, "empty_cart", "The cart is empty.")
		return
	}

	salonID := items[0].Product.SalonID
	for _, it := range items {
		if it.Product.SalonID != salonID {
			httperr.BadRequest(c, "mixed_salon_cart", "All cart items must belong to the same salon.")
			return
		}
	}

	var order models.Order
	err := h.db.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			UserID:  userID,
			SalonID: salonID,
			Status:  "pending",
			Payment: models.PaymentInfo{
				Method: req.PaymentMethod,
				Status: "pending",
			},
		}

		for _, it := range items {
			var product models.Product
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND active = true", it.ProductID).
				First(&product).Error; err != nil {
				return httperr.ErrBusiness("product_not_found")
			}
			if product.Stock < it.Quantity {
				return httperr.ErrBusiness("out_of_stock")
			}

			if err := tx.Model(&product).
				Update("stock", gorm.Expr("stock - ?", it.Quantity)).Error; err != nil {
				return err
			}

			order.Items = append(order.Items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  it.Quantity,
				UnitPrice: product.Price,
			})
			order.Total += product.Price * float64(it.Quantity)
		}
		order.Payment.Amount = order.Total

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			switch code {
			case "product_not_found":
				httperr.NotFound(c, code, "A cart item is no longer available.")
			default:
				httperr.BadRequest(c, code, "Not enough stock for a cart item.")
			}
			return
		}
		httperr.Internal(c, "failed_to_create_order", "Could not place the order.")
		return
	}

	if req.PaymentMethod != "cash" {
		h.chargeOrder(c, &order, req)
		return
	}

	h.notifyOrderPlaced(&order)
	httpresp.Created(c, "Order placed", order)
}

// chargeOrder runs the card charge for a freshly created order. A rejected
// charge restores stock and cancels the order so the items stay sellable.
func (h *OrderHandler) chargeOrder(c *gin.Context, order *models.Order, req CheckoutRequest) {
	charge, err := h.gateway.CreateCharge(c.Request.Context(), payment.CreateChargingInput{
		Amount:      order.Total,
		Description: fmt.Sprintf("Order #%d", order.ID),
		CardToken:   req.CardToken,
		Method:      req.PaymentMethod,
	})
	if err != nil {
		h.releaseOrder(order)
		httperr.Internal(c, "gateway_error", "Payment could not be processed.")
		return
	}

	order.Payment.TransactionID = charge.ID
	order.Payment.CardLastFour = charge.CardLastFour

	switch charge.Status {
	case payment.StatusApproved:
		now := time.Now()
		order.Payment.Status = "paid"
		order.Payment.PaymentDate = &now
		order.Status = "confirmed"
		if err := h.settleOrder(order); err != nil {
			httperr.Internal(c, "failed_to_update_order", "Could not record the payment.")
			return
		}
		h.notifyOrderPlaced(order)
		httpresp.Created(c, "Order placed and paid", order)

	case payment.StatusPending:
		if err := h.db.Save(order).Error; err != nil {
			httperr.Internal(c, "failed_to_update_order", "Could not record the payment.")
			return
		}
		httpresp.Created(c, "Order placed, payment pending", order)

	default:
		order.Payment.Status = "failed"
		order.Status = "cancelled"
		h.releaseOrder(order)
		httperr.BadRequest(c, "payment_rejected", "The card payment was rejected.")
	}
}

// settleOrder persists a paid order together with its income row.
func (h *OrderHandler) settleOrder(order *models.Order) error {
	return h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(order).Error; err != nil {
			return err
		}

		var salon models.Salon
		if err := tx.First(&salon, order.SalonID).Error; err != nil {
			return err
		}

		income := models.Income{
			HostID:  salon.HostID,
			SalonID: order.SalonID,
			OrderID: &order.ID,
			Amount:  order.Total,
			Method:  order.Payment.Method,
		}
		return tx.Create(&income).Error
	})
}

// releaseOrder puts the reserved stock back and saves the order as-is.
func (h *OrderHandler) releaseOrder(order *models.Order) {
	_ = h.db.Transaction(func(tx *gorm.DB) error {
		for _, it := range order.Items {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", it.ProductID).
				Update("stock", gorm.Expr("stock + ?", it.Quantity)).Error; err != nil {
				return err
			}
		}
		return tx.Save(order).Error
	})
}

func (h *OrderHandler) notifyOrderPlaced(order *models.Order) {
	var salon models.Salon
	if err := h.db.First(&salon, order.SalonID).Error; err == nil {
		h.notifier.Dispatch(notify.Event{
			Type:       notify.TypeOrderPlaced,
			ReceiverID: salon.HostID,
			Message:    fmt.Sprintf("New order #%d for %.2f %s", order.ID, order.Total, order.Payment.Currency),
			Metadata:   gin.H{"order_id": order.ID},
		})
	}
}

// --------- User ---------

func (h *OrderHandler) ListMy(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var orders []models.Order
	if err := h.db.
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&orders).Error; err != nil {
		httperr.Internal(c, "failed_to_list_orders", "Could not list orders.")
		return
	}

	httpresp.List(c, "Orders loaded", orders)
}

// --------- Host ---------

func (h *OrderHandler) ListForSalon(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)

	salon, err := salonForHost(h.db, hostID)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "No salon for this account.")
		return
	}

	var orders []models.Order
	if err := h.db.
		Preload("Items.Product").
		Preload("User").
		Where("salon_id = ?", salon.ID).
		Order("id DESC").
		Find(&orders).Error; err != nil {
		httperr.Internal(c, "failed_to_list_orders", "Could not list orders.")
		return
	}

	httpresp.List(c, "Orders loaded", orders)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	salon, err := salonForHost(h.db, hostID)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "No salon for this account.")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var order models.Order
	if err := h.db.
		Preload("Items").
		Where("id = ? AND salon_id = ?", id, salon.ID).
		First(&order).Error; err != nil {
		httperr.NotFound(c, "order_not_found", "Order not found.")
		return
	}

	if order.Status == "completed" || order.Status == "cancelled" {
		httperr.BadRequest(c, "order_already_closed", "The order is already closed.")
		return
	}

	order.Status = req.Status

	// Completing an unpaid cash order settles it on the spot.
	if req.Status == "completed" && order.Payment.Method == "cash" && order.Payment.Status == "pending" {
		now := time.Now()
		order.Payment.Status = "paid"
		order.Payment.TransactionID = uuid.NewString()
		order.Payment.PaymentDate = &now
		if err := h.settleOrder(&order); err != nil {
			httperr.Internal(c, "failed_to_update_order", "Could not save the order.")
			return
		}
		httpresp.OK(c, "Order updated", order)
		return
	}

	if req.Status == "cancelled" {
		order.Status = "cancelled"
		h.releaseOrder(&order)
		httpresp.OK(c, "Order cancelled", order)
		return
	}

	if err := h.db.Save(&order).Error; err != nil {
		httperr.Internal(c, "failed_to_update_order", "Could not save the order.")
		return
	}

	httpresp.OK(c, "Order updated", order)
}
