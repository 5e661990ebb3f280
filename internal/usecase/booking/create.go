package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mdbarber/booking-api/internal/audit"
	"github.com/mdbarber/booking-api/internal/cache"
	domain "github.com/mdbarber/booking-api/internal/domain/booking"
	"github.com/mdbarber/booking-api/internal/httperr"
	"github.com/mdbarber/booking-api/internal/models"
	"github.com/mdbarber/booking-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientName  string
	ClientPhone string
	ClientID    *uint

	ServiceID uint

	Date string // YYYY-MM-DD
	Time string // HH:mm

	PaymentRef string
	Notes      string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
	tz    string
}

func NewCreateAppointment(
	repo domain.Repository,
	auditor *audit.Dispatcher,
	c *cache.Availability,
	tz string,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: auditor,
		cache: c,
		tz:    tz,
	}
}

// Execute es la verificación autoritativa del write-path: la lista de
// slots que vio el cliente puede estar obsoleta, así que todo se
// re-valida contra el estado actual antes de persistir.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(uc.tz),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	service, err := uc.repo.GetServiceByID(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, err
	}

	// La duración del servicio queda congelada en [start, end)
	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	// Ventana del día: la cita completa debe caber en el horario.
	// Sin registro para el weekday = día cerrado, no error de infra.
	sched, err := uc.repo.GetScheduleForDay(ctx, int(start.Weekday()))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	open, close, ok := domain.DayWindow(sched, start)
	if !ok || !domain.WithinWindow(open, close, start, end) {
		return nil, httperr.ErrBusiness("outside_business_hours")
	}

	// Bloqueos de agenda
	loc := start.Location()
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	blackouts, err := uc.repo.ListBlackouts(ctx, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	for _, b := range blackouts {
		if domain.Overlaps(start, end, b.StartTime, b.EndTime) {
			return nil, httperr.ErrBusiness("outside_business_hours")
		}
	}

	ap := &models.Appointment{
		ClientName:  in.ClientName,
		ClientPhone: in.ClientPhone,
		ClientID:    in.ClientID,
		ServiceID:   service.ID,
		StartTime:   start,
		EndTime:     end,
		Price:       service.Price,
		Status:      string(domain.InitialStatus()),
		PaymentRef:  in.PaymentRef,
		Notes:       in.Notes,
	}

	// Verificación de conflicto + insert, atómico en el repositorio
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.cache.InvalidateDay(ctx, in.Date)

	uc.audit.Dispatch(audit.Event{
		ActorType: "public",
		ActorID:   in.ClientID,
		Action:    "appointment_created",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
