package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mdbarber/booking-api/internal/httperr"
	"github.com/mdbarber/booking-api/internal/models"
	"github.com/mdbarber/booking-api/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type StatsHandler struct {
	db *gorm.DB
	tz string
}

func NewStatsHandler(db *gorm.DB, tz string) *StatsHandler {
	return &StatsHandler{db: db, tz: tz}
}

// ======================================================
// GET /api/admin/stats
// ======================================================

// Get entrega el resumen del panel. Sin parámetros devuelve los cortes
// de hoy, la semana y el mes en curso; con from/to devuelve el rango.
func (h *StatsHandler) Get(c *gin.Context) {
	fromStr := c.Query("from")
	toStr := c.Query("to")

	if fromStr != "" && toStr != "" {
		h.getRange(c, fromStr, toStr)
		return
	}

	now := timezone.NowIn(h.tz)
	dayStart, dayEnd := dayBounds(now)

	// La semana corre de lunes a domingo
	offset := (int(now.Weekday()) + 6) % 7
	weekStart := dayStart.AddDate(0, 0, -offset)
	weekEnd := weekStart.AddDate(0, 0, 7)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	dayIncome, err := h.completedIncome(dayStart, dayEnd)
	if err != nil {
		httperr.Internal(c, "stats_failed", "Error al calcular estadísticas.")
		return
	}
	weekIncome, err := h.completedIncome(weekStart, weekEnd)
	if err != nil {
		httperr.Internal(c, "stats_failed", "Error al calcular estadísticas.")
		return
	}
	monthIncome, err := h.completedIncome(monthStart, monthEnd)
	if err != nil {
		httperr.Internal(c, "stats_failed", "Error al calcular estadísticas.")
		return
	}

	var active int64
	if err := h.db.
		Model(&models.Appointment{}).
		Where("status IN ? AND start_time >= ?", []string{"pending", "confirmed"}, now).
		Count(&active).Error; err != nil {

		httperr.Internal(c, "stats_failed", "Error al calcular estadísticas.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"today":  gin.H{"income": dayIncome},
		"week":   gin.H{"income": weekIncome},
		"month":  gin.H{"income": monthIncome},
		"active": active,
	})
}

func (h *StatsHandler) getRange(c *gin.Context, fromStr, toStr string) {
	from, err := parseDate(h.tz, fromStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}
	to, err := parseDate(h.tz, toStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	start, _ := dayBounds(from)
	_, end := dayBounds(to)

	income, err := h.completedIncome(start, end)
	if err != nil {
		httperr.Internal(c, "stats_failed", "Error al calcular estadísticas.")
		return
	}

	counts := map[string]int64{}
	for _, status := range []string{"pending", "confirmed", "completed", "cancelled"} {
		var n int64
		if err := h.db.
			Model(&models.Appointment{}).
			Where("status = ? AND start_time >= ? AND start_time < ?", status, start, end).
			Count(&n).Error; err != nil {

			httperr.Internal(c, "stats_failed", "Error al calcular estadísticas.")
			return
		}
		counts[status] = n
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	c.JSON(http.StatusOK, gin.H{
		"from":   fromStr,
		"to":     toStr,
		"income": income,
		"total":  total,
		"counts": counts,
	})
}

// completedIncome suma el precio congelado de las citas completadas
// del rango; el precio actual del servicio no participa.
func (h *StatsHandler) completedIncome(start, end time.Time) (float64, error) {
	var income float64
	err := h.db.
		Model(&models.Appointment{}).
		Where("status = ? AND start_time >= ? AND start_time < ?", "completed", start, end).
		Select("COALESCE(SUM(price), 0)").
		Scan(&income).Error
	return income, err
}
