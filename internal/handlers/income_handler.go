package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
	"github.com/nrbnayon/BarBar-sub000/internal/httpresp"
	"github.com/nrbnayon/BarBar-sub000/internal/middleware"
	"github.com/nrbnayon/BarBar-sub000/internal/models"
)

type IncomeHandler struct {
	db *gorm.DB
}

func NewIncomeHandler(db *gorm.DB) *IncomeHandler {
	return &IncomeHandler{db: db}
}

type incomeSummary struct {
	Total        float64 `json:"total"`
	Count        int64   `json:"count"`
	ServiceTotal float64 `json:"service_total"`
	ProductTotal float64 `json:"product_total"`
}

// periodRange parses optional from/to query params (YYYY-MM-DD) in the
// salon's timezone. A missing "from" defaults to the first of the current
// month, a missing "to" to now.
func periodRange(c *gin.Context, salon *models.Salon) (time.Time, time.Time, error) {
	loc := locationFromSalon(salon)
	now := time.Now().In(loc)

	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	to := now

	if v := c.Query("from"); v != "" {
		parsed, err := parseDateInSalon(salon, v)
		if err != nil {
			return from, to, err
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := parseDateInSalon(salon, v)
		if err != nil {
			return from, to, err
		}
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, nil
}

func (h *IncomeHandler) List(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)

	salon, err := salonForHost(h.db, hostID)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "No salon for this account.")
		return
	}

	from, to, err := periodRange(c, salon)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Dates must use the YYYY-MM-DD format.")
		return
	}

	var incomes []models.Income
	if err := h.db.
		Where("salon_id = ? AND created_at >= ? AND created_at < ?", salon.ID, from, to).
		Order("id DESC").
		Find(&incomes).Error; err != nil {
		httperr.Internal(c, "failed_to_list_income", "Could not list income entries.")
		return
	}

	httpresp.List(c, "Income loaded", incomes)
}

func (h *IncomeHandler) Summary(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)

	salon, err := salonForHost(h.db, hostID)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "No salon for this account.")
		return
	}

	from, to, err := periodRange(c, salon)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Dates must use the YYYY-MM-DD format.")
		return
	}

	var incomes []models.Income
	if err := h.db.
		Where("salon_id = ? AND created_at >= ? AND created_at < ?", salon.ID, from, to).
		Find(&incomes).Error; err != nil {
		httperr.Internal(c, "failed_to_list_income", "Could not load the income summary.")
		return
	}

	var summary incomeSummary
	for _, in := range incomes {
		summary.Total += in.Amount
		summary.Count++
		if in.AppointmentID != nil {
			summary.ServiceTotal += in.Amount
		}
		if in.OrderID != nil {
			summary.ProductTotal += in.Amount
		}
	}

	httpresp.OK(c, "Income summary loaded", summary)
}
