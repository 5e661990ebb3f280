package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mdbarber/booking-api/internal/audit"
	"github.com/mdbarber/booking-api/internal/cache"
	"github.com/mdbarber/booking-api/internal/config"
	"github.com/mdbarber/booking-api/internal/handlers"
	"github.com/mdbarber/booking-api/internal/infra/imagestore"
	"github.com/mdbarber/booking-api/internal/infra/paymentgw"
	infraRepo "github.com/mdbarber/booking-api/internal/infra/repository"
	"github.com/mdbarber/booking-api/internal/metrics"
	"github.com/mdbarber/booking-api/internal/middleware"
	ucBooking "github.com/mdbarber/booking-api/internal/usecase/booking"
)

// Deps reúne las dependencias externas que main construye según la
// configuración (pueden ser nil cuando la integración está apagada).
type Deps struct {
	Cache    *cache.Availability
	Payments paymentgw.Provider
	Images   imagestore.Store
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger, deps Deps) {

	tz := cfg.ShopTimezone

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES — BOOKING
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo, deps.Cache)

	createAppointmentUC := ucBooking.NewCreateAppointment(
		bookingRepo,
		auditDispatcher,
		deps.Cache,
		tz,
	)

	updateStatusUC := ucBooking.NewUpdateStatus(
		bookingRepo,
		auditDispatcher,
		deps.Cache,
		tz,
	)

	rescheduleUC := ucBooking.NewRescheduleAppointment(
		bookingRepo,
		auditDispatcher,
		deps.Cache,
		tz,
	)

	deleteUC := ucBooking.NewDeleteAppointment(
		bookingRepo,
		auditDispatcher,
		deps.Cache,
		tz,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, auditDispatcher)
	clientHandler := handlers.NewClientHandler(db, cfg, bookingRepo, updateStatusUC)

	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	scheduleHandler := handlers.NewScheduleHandler(db, auditDispatcher, deps.Cache, tz)
	blackoutHandler := handlers.NewBlackoutHandler(db, auditDispatcher, deps.Cache, tz)

	publicHandler := handlers.NewPublicHandler(availabilityUC, createAppointmentUC, tz)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookingRepo,
		updateStatusUC,
		rescheduleUC,
		deleteUC,
		tz,
	)

	paymentHandler := handlers.NewPaymentHandler(deps.Payments)
	uploadHandler := handlers.NewUploadHandler(deps.Images)
	statsHandler := handlers.NewStatsHandler(db, tz)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// OBSERVABILIDAD
	// ======================================================
	r.GET("/metrics", metrics.Handler())

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PÚBLICA
		// ------------------------------
		api.GET("/services", serviceHandler.ListPublic)
		api.GET("/availability", publicHandler.Availability)
		api.GET("/schedule", scheduleHandler.GetPublic)
		api.GET("/settings/schedule-rules", scheduleHandler.GetRules)

		api.POST("/appointments", middleware.OptionalAuth(cfg), publicHandler.CreateAppointment)
		api.POST("/payments/intent", paymentHandler.CreateIntent)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/client/register", clientHandler.Register)
		api.POST("/auth/client/login", clientHandler.Login)

		// ------------------------------
		// ÁREA DEL CLIENTE
		// ------------------------------
		me := api.Group("/me")
		me.Use(middleware.AuthMiddleware(cfg), middleware.RequireClient())
		{
			me.GET("", clientHandler.Me)
			me.GET("/appointments", clientHandler.ListMyAppointments)
			me.PATCH("/appointments/:id/cancel", clientHandler.CancelMyAppointment)
		}

		// ------------------------------
		// PANEL DEL ADMINISTRADOR
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireAdmin())
		{
			admin.GET("/appointments", appointmentHandler.ListByRange)
			admin.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
			admin.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			admin.DELETE("/appointments/:id", appointmentHandler.Delete)

			admin.GET("/schedule", scheduleHandler.GetAdmin)
			admin.PUT("/schedule", scheduleHandler.Update)

			admin.GET("/blackouts", blackoutHandler.List)
			admin.POST("/blackouts", blackoutHandler.Create)
			admin.DELETE("/blackouts/:id", blackoutHandler.Delete)

			admin.GET("/services", serviceHandler.ListAdmin)
			admin.POST("/services", serviceHandler.Create)
			admin.PUT("/services/:id", serviceHandler.Update)
			admin.DELETE("/services/:id", serviceHandler.Delete)

			admin.GET("/stats", statsHandler.Get)
			admin.POST("/change-password", authHandler.ChangePassword)
			admin.POST("/upload", uploadHandler.Upload)
			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
