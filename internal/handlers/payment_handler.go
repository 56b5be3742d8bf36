package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
	"github.com/nrbnayon/BarBar-sub000/internal/httpresp"
	"github.com/nrbnayon/BarBar-sub000/internal/middleware"
	"github.com/nrbnayon/BarBar-sub000/internal/models"
	"github.com/nrbnayon/BarBar-sub000/internal/payment"
	booking "github.com/nrbnayon/BarBar-sub000/internal/usecase/booking"
)

type PaymentHandler struct {
	db      *gorm.DB
	gateway payment.Gateway
	applyUC *booking.ApplyPaymentEvent
	cashUC  *booking.ConfirmCashPayment
}

func NewPaymentHandler(
	db *gorm.DB,
	gateway payment.Gateway,
	applyUC *booking.ApplyPaymentEvent,
	cashUC *booking.ConfirmCashPayment,
) *PaymentHandler {
	return &PaymentHandler{
		db:      db,
		gateway: gateway,
		applyUC: applyUC,
		cashUC:  cashUC,
	}
}

// --------- Requests ---------

type PayAppointmentRequest struct {
	CardToken string `json:"card_token" binding:"required"`
}

type GatewayWebhookRequest struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// --------- Card payment ---------

// Pay charges the appointment's price against a tokenized card and applies
// the outcome to the booking.
func (h *PaymentHandler) Pay(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req PayAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var ap models.Appointment
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&ap).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	if ap.Payment.Method == "cash" {
		httperr.BadRequest(c, "invalid_payment_method", "Cash bookings are settled at the salon.")
		return
	}
	if ap.Payment.Status == booking.PaymentPaid {
		httperr.BadRequest(c, "already_paid", "This appointment is already paid.")
		return
	}

	var payer models.User
	if err := h.db.First(&payer, userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Could not load the account.")
		return
	}

	charge, err := h.gateway.CreateCharge(c.Request.Context(), payment.CreateChargingInput{
		Amount:      ap.Payment.Amount,
		Description: "Appointment #" + strconv.FormatUint(uint64(ap.ID), 10),
		CardToken:   req.CardToken,
		Method:      ap.Payment.Method,
		PayerEmail:  payer.Email,
	})
	if err != nil {
		httperr.Internal(c, "gateway_error", "The payment could not be processed.")
		return
	}

	switch charge.Status {
	case payment.StatusApproved:
		updated, err := h.applyUC.Execute(c.Request.Context(), ap.ID, booking.PaymentEvent{
			Kind:          booking.PaymentPaid,
			TransactionID: charge.ID,
			CardLastFour:  charge.CardLastFour,
		})
		if err != nil {
			mapBookingError(c, err)
			return
		}
		httpresp.OK(c, "Payment confirmed", updated)

	case payment.StatusRejected:
		if _, err := h.applyUC.Execute(c.Request.Context(), ap.ID, booking.PaymentEvent{
			Kind:          booking.PaymentFailed,
			TransactionID: charge.ID,
		}); err != nil {
			mapBookingError(c, err)
			return
		}
		httperr.BadRequest(c, "payment_rejected", "The card was declined.")

	default:
		// pending review at the gateway; the webhook settles it later,
		// matching on the transaction id stored here
		ap.Payment.TransactionID = charge.ID
		if err := h.db.Save(&ap).Error; err != nil {
			httperr.Internal(c, "payment_persist_failed", "Could not record the pending payment.")
			return
		}
		httpresp.OK(c, "Payment pending", ap)
	}
}

// --------- Cash ---------

func (h *PaymentHandler) ConfirmCash(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.cashUC.Execute(c.Request.Context(), hostID, uint(id))
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.OK(c, "Cash payment confirmed", ap)
}

// --------- Webhook ---------

// Webhook receives gateway notifications, re-reads the charge from the
// gateway (notification payloads are not trusted) and applies the outcome.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var req GatewayWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Malformed notification.")
		return
	}

	if req.Type != "payment" || req.Data.ID == "" {
		// not a payment event; acknowledge and move on
		httpresp.OK(c, "Ignored", nil)
		return
	}

	charge, err := h.gateway.GetCharge(c.Request.Context(), req.Data.ID)
	if err != nil {
		httperr.Internal(c, "gateway_error", "Could not verify the notification.")
		return
	}

	var ap models.Appointment
	if err := h.db.Where("payment_transaction_id = ?", charge.ID).First(&ap).Error; err != nil {
		// nothing to settle here; not an error for the gateway
		httpresp.OK(c, "No matching appointment", nil)
		return
	}

	var kind string
	switch charge.Status {
	case payment.StatusApproved:
		kind = booking.PaymentPaid
	case payment.StatusRefunded:
		kind = booking.PaymentRefunded
	case payment.StatusRejected:
		kind = booking.PaymentFailed
	default:
		httpresp.OK(c, "Still pending", nil)
		return
	}

	updated, err := h.applyUC.Execute(c.Request.Context(), ap.ID, booking.PaymentEvent{
		Kind:          kind,
		TransactionID: charge.ID,
		CardLastFour:  charge.CardLastFour,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.OK(c, "Notification processed", gin.H{"appointment_id": updated.ID})
}
