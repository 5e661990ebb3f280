package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/mdbarber/booking-api/internal/domain/booking"
	"github.com/mdbarber/booking-api/internal/httperr"
	"github.com/mdbarber/booking-api/internal/middleware"
	"github.com/mdbarber/booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER (reservas sin login)
// ======================================================

type PublicHandler struct {
	availabilityUC *booking.GetAvailability
	createUC       *booking.CreateAppointment
	tz             string
}

func NewPublicHandler(
	availabilityUC *booking.GetAvailability,
	createUC *booking.CreateAppointment,
	tz string,
) *PublicHandler {
	return &PublicHandler{
		availabilityUC: availabilityUC,
		createUC:       createUC,
		tz:             tz,
	}
}

// ======================================================
// DTOs
// ======================================================

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	PaymentRef  string `json:"payment_ref"`
	Notes       string `json:"notes"`
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Fecha y servicio son obligatorios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Servicio inválido.")
		return
	}

	date, err := parseDate(h.tz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			ServiceID: uint(serviceID),
			Date:      date,
		},
	)
	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "Servicio no encontrado.")
			return
		}
		httperr.Internal(c, "availability_failed", "Error al calcular horarios.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// ======================================================
// CREATE APPOINTMENT
// ======================================================

// CreateAppointment acepta reservas anónimas; si hay un cliente con
// sesión iniciada, la cita queda ligada a su cuenta.
func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var clientID *uint
	if v, ok := c.Get(middleware.ContextUserID); ok {
		if role, _ := c.Get(middleware.ContextUserRole); role == middleware.RoleClient {
			id := v.(uint)
			clientID = &id
		}
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		booking.CreateAppointmentInput{
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			ClientID:    clientID,
			ServiceID:   req.ServiceID,
			Date:        req.Date,
			Time:        req.Time,
			PaymentRef:  req.PaymentRef,
			Notes:       req.Notes,
		},
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}
