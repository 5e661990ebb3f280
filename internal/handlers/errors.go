package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mdbarber/booking-api/internal/httperr"
)

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// mapBookingError traduce los errores de negocio de los use cases a la
// respuesta HTTP correspondiente. Cualquier error no reconocido es 500.
func mapBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "time_conflict") || httperr.IsExclusionConflict(err):
		httperr.Conflict(c, "time_conflict", "El horario seleccionado ya no está disponible.")

	case httperr.IsBusiness(err, "outside_business_hours"):
		httperr.Conflict(c, "outside_business_hours", "Fuera del horario de atención.")

	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Servicio no encontrado.")

	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Fecha u hora inválida.")

	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Cita no encontrada.")

	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "La cita no admite esa operación.")

	case httperr.IsBusiness(err, "invalid_status"):
		httperr.BadRequest(c, "invalid_status", "Estado inválido.")

	default:
		httperr.Internal(c, "internal_error", "Error interno.")
	}
}
