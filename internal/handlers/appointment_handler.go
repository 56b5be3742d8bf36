package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nrbnayon/BarBar-sub000/internal/cache"
	domain "github.com/nrbnayon/BarBar-sub000/internal/domain/booking"
	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
	"github.com/nrbnayon/BarBar-sub000/internal/httpresp"
	"github.com/nrbnayon/BarBar-sub000/internal/middleware"
	"github.com/nrbnayon/BarBar-sub000/internal/models"
	booking "github.com/nrbnayon/BarBar-sub000/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	createUC     *booking.CreateBooking
	slotsUC      *booking.GetAvailableSlots
	cancelUC     *booking.CancelBooking
	rescheduleUC *booking.RescheduleBooking
	statusUC     *booking.UpdateStatus
	listMyUC     *booking.ListMyBookings
	listSalonUC  *booking.ListSalonBookings

	slotCache *cache.SlotCache
}

func NewAppointmentHandler(
	db *gorm.DB,
	createUC *booking.CreateBooking,
	slotsUC *booking.GetAvailableSlots,
	cancelUC *booking.CancelBooking,
	rescheduleUC *booking.RescheduleBooking,
	statusUC *booking.UpdateStatus,
	listMyUC *booking.ListMyBookings,
	listSalonUC *booking.ListSalonBookings,
	slotCache *cache.SlotCache,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:           db,
		createUC:     createUC,
		slotsUC:      slotsUC,
		cancelUC:     cancelUC,
		rescheduleUC: rescheduleUC,
		statusUC:     statusUC,
		listMyUC:     listMyUC,
		listSalonUC:  listSalonUC,
		slotCache:    slotCache,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	SalonID   uint   `json:"salon_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime string `json:"start_time" binding:"required"`

	PaymentMethod  string `json:"payment_method" binding:"required"`
	IdempotencyKey string `json:"idempotency_key"`
	Notes          string `json:"notes"`
}

type RescheduleRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

var bookingErrorMessages = map[string]string{
	"salon_not_found":             "Salon not found.",
	"salon_not_active":            "This salon is not taking bookings.",
	"service_not_found":           "Service not found.",
	"appointment_not_found":       "Appointment not found.",
	"salon_closed":                "The salon is closed on that day.",
	"outside_business_hours":      "That time is outside business hours.",
	"past_booking":                "The requested time is no longer bookable.",
	"slot_full":                   "This time slot is fully booked.",
	"duplicate_request":           "This booking was already submitted.",
	"invalid_payment_method":      "Unsupported payment method.",
	"invalid_date":                "Invalid date.",
	"invalid_time":                "Invalid time.",
	"invalid_status":              "Unknown appointment status.",
	"invalid_state":               "The appointment cannot change to that status.",
	"cancellation_window_expired": "Cancellations close 24 hours before the appointment.",
	"reschedule_limit_reached":    "Maximum reschedule limit reached.",
	"already_paid":                "This appointment is already paid.",
	"refund_failed":               "The refund could not be processed. The appointment is still active.",
}

func mapBookingError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	msg, known := bookingErrorMessages[code]
	if !known {
		msg = "Request failed."
	}

	switch code {
	case "salon_not_found", "service_not_found", "appointment_not_found":
		httperr.NotFound(c, code, msg)
	case "not_salon_owner":
		httperr.Forbidden(c, code, "Only the salon owner can do that.")
	default:
		httperr.BadRequest(c, code, msg)
	}
}

// ======================================================
// USER
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), booking.CreateBookingInput{
		UserID:         userID,
		SalonID:        req.SalonID,
		ServiceID:      req.ServiceID,
		Date:           req.Date,
		StartTime:      req.StartTime,
		PaymentMethod:  req.PaymentMethod,
		IdempotencyKey: req.IdempotencyKey,
		Notes:          req.Notes,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	h.slotCache.Invalidate(c.Request.Context(), ap.SalonID, ap.ServiceID, req.Date)

	httpresp.Created(c, "Appointment booked", ap)
}

func (h *AppointmentHandler) ListMy(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	aps, err := h.listMyUC.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, "Appointments loaded", aps)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), userID, uint(id))
	if err != nil {
		mapBookingError(c, err)
		return
	}

	h.invalidateSlotDay(c, ap)

	httpresp.OK(c, "Appointment cancelled", ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	res, err := h.rescheduleUC.Execute(c.Request.Context(), booking.RescheduleInput{
		UserID:        userID,
		AppointmentID: uint(id),
		Date:          req.Date,
		StartTime:     req.StartTime,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	ap := res.Appointment

	// both the day the booking left and the day it landed on changed
	// occupancy
	h.slotCache.Invalidate(c.Request.Context(), ap.SalonID, ap.ServiceID, res.PreviousDate)
	h.invalidateSlotDay(c, ap)

	httpresp.OK(c, "Appointment rescheduled", ap)
}

// ======================================================
// HOST
// ======================================================

func (h *AppointmentHandler) ListSalonByDate(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)

	salon, err := salonForHost(h.db, hostID)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "No salon for this account.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	aps, err := h.listSalonUC.ExecuteDay(c.Request.Context(), salon.ID, dateStr)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.List(c, "Appointments loaded", aps)
}

func (h *AppointmentHandler) ListSalonByMonth(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)

	salon, err := salonForHost(h.db, hostID)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "No salon for this account.")
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	aps, err := h.listSalonUC.ExecuteMonth(c.Request.Context(), salon.ID, year, month)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.List(c, "Appointments loaded", aps)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)

	salon, err := salonForHost(h.db, hostID)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "No salon for this account.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.statusUC.Execute(
		c.Request.Context(),
		salon.ID,
		hostID,
		uint(id),
		domain.Status(req.Status),
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	h.invalidateSlotDay(c, ap)

	httpresp.OK(c, "Appointment status updated", ap)
}

// ======================================================
// PUBLIC AVAILABILITY
// ======================================================

func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Date and service are required.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service.")
		return
	}

	var salon models.Salon
	if err := h.db.Where("slug = ? AND status = ?", slug, "active").First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	date, err := parseDateInSalon(&salon, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	if slots, ok := h.slotCache.Get(c.Request.Context(), salon.ID, uint(serviceID), dateStr); ok {
		httpresp.OK(c, "Available slots", gin.H{"date": dateStr, "slots": slots})
		return
	}

	slots, err := h.slotsUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		SalonID:   salon.ID,
		ServiceID: uint(serviceID),
		Date:      date,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	h.slotCache.Set(c.Request.Context(), salon.ID, uint(serviceID), dateStr, slots)

	httpresp.OK(c, "Available slots", gin.H{"date": dateStr, "slots": slots})
}

// ======================================================
// HELPERS
// ======================================================

func (h *AppointmentHandler) invalidateSlotDay(c *gin.Context, ap *models.Appointment) {
	h.slotCache.Invalidate(
		c.Request.Context(),
		ap.SalonID,
		ap.ServiceID,
		ap.AppointmentDate.Format("2006-01-02"),
	)
}
