package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nrbnayon/BarBar-sub000/internal/audit"
	"github.com/nrbnayon/BarBar-sub000/internal/cache"
	"github.com/nrbnayon/BarBar-sub000/internal/config"
	"github.com/nrbnayon/BarBar-sub000/internal/handlers"
	infraRepo "github.com/nrbnayon/BarBar-sub000/internal/infra/repository"
	"github.com/nrbnayon/BarBar-sub000/internal/media"
	"github.com/nrbnayon/BarBar-sub000/internal/middleware"
	"github.com/nrbnayon/BarBar-sub000/internal/notify"
	"github.com/nrbnayon/BarBar-sub000/internal/payment"
	ucBooking "github.com/nrbnayon/BarBar-sub000/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	gateway payment.Gateway,
	slotCache *cache.SlotCache,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	notifyWriter := notify.NewWriter(db)
	notifier := notify.NewDispatcher(notifyWriter)

	storage := media.NewStorage(cfg)

	// ======================================================
	// USE CASES - BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, notifier, auditDispatcher)
	availableSlotsUC := ucBooking.NewGetAvailableSlots(bookingRepo)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, gateway, notifier, auditDispatcher)
	rescheduleBookingUC := ucBooking.NewRescheduleBooking(bookingRepo, notifier, auditDispatcher)
	updateStatusUC := ucBooking.NewUpdateStatus(bookingRepo, notifier, auditDispatcher)
	listMyBookingsUC := ucBooking.NewListMyBookings(bookingRepo)
	listSalonBookingsUC := ucBooking.NewListSalonBookings(bookingRepo)

	applyPaymentUC := ucBooking.NewApplyPaymentEvent(bookingRepo, notifier)
	confirmCashUC := ucBooking.NewConfirmCashPayment(bookingRepo, applyPaymentUC)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	salonHandler := handlers.NewSalonHandler(db, notifier)
	businessHoursHandler := handlers.NewBusinessHoursHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	productHandler := handlers.NewProductHandler(db)
	cartHandler := handlers.NewCartHandler(db)
	orderHandler := handlers.NewOrderHandler(db, gateway, notifier)
	incomeHandler := handlers.NewIncomeHandler(db)
	notificationHandler := handlers.NewNotificationHandler(db)
	mediaHandler := handlers.NewMediaHandler(db, storage)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createBookingUC,
		availableSlotsUC,
		cancelBookingUC,
		rescheduleBookingUC,
		updateStatusUC,
		listMyBookingsUC,
		listSalonBookingsUC,
		slotCache,
	)

	paymentHandler := handlers.NewPaymentHandler(db, gateway, applyPaymentUC, confirmCashUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/salons", salonHandler.ListActive)
			publicAPI.GET("/salons/:slug/services", serviceHandler.ListPublic)
			publicAPI.GET("/salons/:slug/products", productHandler.ListPublic)
			publicAPI.GET("/salons/:slug/availability", appointmentHandler.AvailableSlots)
		}

		// gateway callbacks authenticate by re-reading the charge
		api.POST("/webhooks/payments", paymentHandler.Webhook)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/notifications", notificationHandler.List)
			secured.PATCH("/me/notifications/:id/read", notificationHandler.MarkRead)
			secured.PATCH("/me/notifications/read-all", notificationHandler.MarkAllRead)

			// ------------------------------
			// CUSTOMERS
			// ------------------------------
			customer := secured.Group("/")
			customer.Use(middleware.RequireRole(middleware.RoleUser, middleware.RoleHost))
			{
				customer.POST("/me/appointments", appointmentHandler.Create)
				customer.GET("/me/appointments", appointmentHandler.ListMy)
				customer.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
				customer.PATCH("/me/appointments/:id/reschedule", appointmentHandler.Reschedule)
				customer.POST("/me/appointments/:id/pay", paymentHandler.Pay)

				customer.GET("/me/cart", cartHandler.GetCart)
				customer.POST("/me/cart", cartHandler.AddToCart)
				customer.DELETE("/me/cart/:id", cartHandler.RemoveFromCart)

				customer.GET("/me/wishlist", cartHandler.GetWishlist)
				customer.POST("/me/wishlist", cartHandler.AddToWishlist)
				customer.DELETE("/me/wishlist/:id", cartHandler.RemoveFromWishlist)

				customer.POST("/me/orders", orderHandler.Checkout)
				customer.GET("/me/orders", orderHandler.ListMy)
			}

			// ------------------------------
			// HOSTS
			// ------------------------------
			host := secured.Group("/")
			host.Use(middleware.RequireRole(middleware.RoleHost))
			{
				host.POST("/me/salon", salonHandler.Create)
				host.GET("/me/salon", salonHandler.GetMySalon)
				host.PATCH("/me/salon", salonHandler.UpdateMySalon)

				host.GET("/me/salon/business-hours", businessHoursHandler.Get)
				host.PUT("/me/salon/business-hours", businessHoursHandler.Update)

				host.GET("/me/salon/categories", serviceHandler.ListCategories)
				host.POST("/me/salon/categories", serviceHandler.CreateCategory)

				host.GET("/me/salon/services", serviceHandler.List)
				host.POST("/me/salon/services", serviceHandler.Create)
				host.PATCH("/me/salon/services/:id", serviceHandler.Update)

				host.GET("/me/salon/products", productHandler.List)
				host.POST("/me/salon/products", productHandler.Create)
				host.PATCH("/me/salon/products/:id", productHandler.Update)

				host.GET("/me/salon/appointments", appointmentHandler.ListSalonByDate)
				host.GET("/me/salon/appointments/month", appointmentHandler.ListSalonByMonth)
				host.PATCH("/me/salon/appointments/:id/status", appointmentHandler.UpdateStatus)
				host.POST("/me/salon/appointments/:id/confirm-cash", paymentHandler.ConfirmCash)

				host.GET("/me/salon/orders", orderHandler.ListForSalon)
				host.PATCH("/me/salon/orders/:id/status", orderHandler.UpdateStatus)

				host.GET("/me/salon/income", incomeHandler.List)
				host.GET("/me/salon/income/summary", incomeHandler.Summary)

				host.POST("/me/salon/media", mediaHandler.Upload)

				host.GET("/me/salon/audit-logs", auditLogsHandler.List)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(middleware.RoleAdmin))
			{
				admin.PATCH("/salons/:id/status", salonHandler.UpdateStatus)
			}
		}
	}
}
