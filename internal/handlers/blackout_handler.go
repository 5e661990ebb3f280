package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mdbarber/booking-api/internal/audit"
	"github.com/mdbarber/booking-api/internal/cache"
	"github.com/mdbarber/booking-api/internal/httperr"
	"github.com/mdbarber/booking-api/internal/httpresp"
	"github.com/mdbarber/booking-api/internal/middleware"
	"github.com/mdbarber/booking-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type BlackoutHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache *cache.Availability
	tz    string
}

func NewBlackoutHandler(
	db *gorm.DB,
	auditor *audit.Dispatcher,
	c *cache.Availability,
	tz string,
) *BlackoutHandler {
	return &BlackoutHandler{db: db, audit: auditor, cache: c, tz: tz}
}

// ======================================================
// REQUESTS
// ======================================================

type BlackoutRequest struct {
	Date      string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime string `json:"start_time" binding:"required"` // HH:mm
	EndTime   string `json:"end_time" binding:"required"`   // HH:mm
	Reason    string `json:"reason"`
}

// ======================================================
// ADMIN
// ======================================================

func (h *BlackoutHandler) List(c *gin.Context) {
	var blackouts []models.BlackoutPeriod
	if err := h.db.Order("start_time DESC").Find(&blackouts).Error; err != nil {
		httperr.Internal(c, "failed_to_list_blackouts", "Error al listar bloqueos.")
		return
	}

	httpresp.List(c, blackouts)
}

// Create registra un bloqueo de agenda (vacaciones, cita médica). Los
// bloqueos solo cierran slots futuros; las citas ya confirmadas en el
// rango no se tocan.
func (h *BlackoutHandler) Create(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	var req BlackoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	start, err := parseDateTime(h.tz, req.Date, req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Fecha u hora inválida.")
		return
	}

	end, err := parseDateTime(h.tz, req.Date, req.EndTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Fecha u hora inválida.")
		return
	}

	if !start.Before(end) {
		httperr.BadRequest(c, "invalid_range", "El inicio debe ser anterior al fin.")
		return
	}

	blackout := models.BlackoutPeriod{
		StartTime: start,
		EndTime:   end,
		Reason:    req.Reason,
	}

	if err := h.db.Create(&blackout).Error; err != nil {
		httperr.Internal(c, "failed_to_create_blackout", "Error al crear bloqueo.")
		return
	}

	h.cache.InvalidateDay(c.Request.Context(), req.Date)

	h.audit.Dispatch(audit.Event{
		ActorType: "admin",
		ActorID:   &barberID,
		Action:    "blackout_created",
		Entity:    "blackout_period",
		EntityID:  &blackout.ID,
	})

	c.JSON(http.StatusCreated, blackout)
}

func (h *BlackoutHandler) Delete(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var blackout models.BlackoutPeriod
	if err := h.db.First(&blackout, id).Error; err != nil {
		httperr.NotFound(c, "blackout_not_found", "Bloqueo no encontrado.")
		return
	}

	if err := h.db.Delete(&blackout).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_blackout", "Error al eliminar bloqueo.")
		return
	}

	h.cache.InvalidateDay(c.Request.Context(), dateKey(h.tz, blackout.StartTime))

	h.audit.Dispatch(audit.Event{
		ActorType: "admin",
		ActorID:   &barberID,
		Action:    "blackout_deleted",
		Entity:    "blackout_period",
		EntityID:  &blackout.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
