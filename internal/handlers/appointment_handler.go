package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/mdbarber/booking-api/internal/domain/booking"
	"github.com/mdbarber/booking-api/internal/dto"
	"github.com/mdbarber/booking-api/internal/httperr"
	"github.com/mdbarber/booking-api/internal/httpresp"
	"github.com/mdbarber/booking-api/internal/middleware"
	"github.com/mdbarber/booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER (panel del administrador)
// ======================================================

type AppointmentHandler struct {
	repo         domain.Repository
	statusUC     *booking.UpdateStatus
	rescheduleUC *booking.RescheduleAppointment
	deleteUC     *booking.DeleteAppointment
	tz           string
}

func NewAppointmentHandler(
	repo domain.Repository,
	statusUC *booking.UpdateStatus,
	rescheduleUC *booking.RescheduleAppointment,
	deleteUC *booking.DeleteAppointment,
	tz string,
) *AppointmentHandler {
	return &AppointmentHandler{
		repo:         repo,
		statusUC:     statusUC,
		rescheduleUC: rescheduleUC,
		deleteUC:     deleteUC,
		tz:           tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RescheduleRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Time string `json:"time" binding:"required"` // HH:mm
}

// ======================================================
// LIST
// ======================================================

// ListByRange devuelve la agenda del rango [from, to] inclusive, con
// canceladas incluidas: el panel necesita ver todo.
func (h *AppointmentHandler) ListByRange(c *gin.Context) {
	fromStr := c.Query("from")
	toStr := c.Query("to")

	if fromStr == "" || toStr == "" {
		httperr.BadRequest(c, "missing_range", "Los parámetros from y to son obligatorios.")
		return
	}

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

	aps, err := h.repo.ListAppointmentsForPeriod(c.Request.Context(), start, end)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error al listar citas.")
		return
	}

	items := make([]dto.AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		items = append(items, dto.AppointmentListDTO{
			ID:          ap.ID,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			ClientName:  ap.ClientName,
			ClientPhone: ap.ClientPhone,
			ServiceName: ap.Service.Name,
			Price:       ap.Price,
			Notes:       ap.Notes,
		})
	}

	httpresp.List(c, items)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	status := domain.Status(req.Status)
	if !status.Valid() {
		httperr.BadRequest(c, "invalid_status", "Estado inválido.")
		return
	}

	ap, err := h.statusUC.Execute(c.Request.Context(), id, status, "admin", barberID)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), id, req.Date, req.Time, barberID)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// DELETE
// ======================================================

// Delete borra el registro por completo; para liberar el horario sin
// perder el historial se usa el cambio de estado a cancelled.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id, barberID); err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
