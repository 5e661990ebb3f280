package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mdbarber/booking-api/internal/audit"
	"github.com/mdbarber/booking-api/internal/cache"
	"github.com/mdbarber/booking-api/internal/httperr"
	"github.com/mdbarber/booking-api/internal/middleware"
	"github.com/mdbarber/booking-api/internal/models"
	"github.com/mdbarber/booking-api/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache *cache.Availability
	tz    string
}

func NewScheduleHandler(
	db *gorm.DB,
	auditor *audit.Dispatcher,
	c *cache.Availability,
	tz string,
) *ScheduleHandler {
	return &ScheduleHandler{db: db, audit: auditor, cache: c, tz: tz}
}

// ======================================================
// REQUESTS
// ======================================================

type ScheduleDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	Active    bool   `json:"active"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

type ScheduleUpdateRequest struct {
	Days []ScheduleDayConfig `json:"days" binding:"required,dive"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *ScheduleHandler) GetPublic(c *gin.Context) {
	var days []models.WeeklySchedule
	if err := h.db.Order("weekday ASC").Find(&days).Error; err != nil {
		httperr.Internal(c, "failed_to_get_schedule", "Error al consultar horario.")
		return
	}

	c.JSON(http.StatusOK, days)
}

// GetRules entrega lo que el frontend necesita para pintar el
// calendario: días cerrados de la semana y bloqueos próximos.
func (h *ScheduleHandler) GetRules(c *gin.Context) {
	var days []models.WeeklySchedule
	if err := h.db.Order("weekday ASC").Find(&days).Error; err != nil {
		httperr.Internal(c, "failed_to_get_schedule", "Error al consultar horario.")
		return
	}

	configured := make(map[int]bool, len(days))
	closedDays := make([]int, 0)
	for _, d := range days {
		configured[d.Weekday] = true
		if !d.Active || d.OpenTime == "" || d.CloseTime == "" {
			closedDays = append(closedDays, d.Weekday)
		}
	}
	for wd := 0; wd < 7; wd++ {
		if !configured[wd] {
			closedDays = append(closedDays, wd)
		}
	}

	now := timezone.NowIn(h.tz)
	var blackouts []models.BlackoutPeriod
	if err := h.db.
		Where("end_time > ?", now).
		Order("start_time ASC").
		Find(&blackouts).Error; err != nil {

		httperr.Internal(c, "failed_to_get_blackouts", "Error al consultar bloqueos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"closed_days": closedDays,
		"blackouts":   blackouts,
	})
}

// ======================================================
// ADMIN
// ======================================================

func (h *ScheduleHandler) GetAdmin(c *gin.Context) {
	var days []models.WeeklySchedule
	if err := h.db.Order("weekday ASC").Find(&days).Error; err != nil {
		httperr.Internal(c, "failed_to_get_schedule", "Error al consultar horario.")
		return
	}

	c.JSON(http.StatusOK, days)
}

// Update hace upsert por weekday: llamarlo dos veces con el mismo
// payload deja exactamente la misma agenda.
func (h *ScheduleHandler) Update(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	for _, d := range req.Days {
		if d.Active && !validClockRange(d.OpenTime, d.CloseTime) {
			httperr.BadRequest(c, "invalid_schedule", "Horario de apertura inválido.")
			return
		}
	}

	rows := make([]models.WeeklySchedule, 0, len(req.Days))
	for _, d := range req.Days {
		rows = append(rows, models.WeeklySchedule{
			Weekday:   d.Weekday,
			Active:    d.Active,
			OpenTime:  d.OpenTime,
			CloseTime: d.CloseTime,
		})
	}

	if len(rows) > 0 {
		err := h.db.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "weekday"}},
				DoUpdates: clause.AssignmentColumns([]string{"active", "open_time", "close_time", "updated_at"}),
			}).
			Create(&rows).Error
		if err != nil {
			httperr.Internal(c, "failed_to_save_schedule", "Error al guardar horario.")
			return
		}
	}

	// El horario cambia los slots de cualquier fecha futura cacheada
	h.cache.InvalidateAll(c.Request.Context())

	h.audit.Dispatch(audit.Event{
		ActorType: "admin",
		ActorID:   &barberID,
		Action:    "schedule_updated",
		Entity:    "weekly_schedule",
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// validClockRange exige HH:mm y apertura estrictamente antes del cierre.
func validClockRange(open, close string) bool {
	o, err1 := time.Parse("15:04", open)
	cl, err2 := time.Parse("15:04", close)
	return err1 == nil && err2 == nil && o.Before(cl)
}
