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

type RescheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
	tz    string
}

func NewRescheduleAppointment(
	repo domain.Repository,
	auditor *audit.Dispatcher,
	c *cache.Availability,
	tz string,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: auditor,
		cache: c,
		tz:    tz,
	}
}

// Execute mueve la cita a un nuevo intervalo y la fuerza a confirmed,
// sin importar el estado previo. Conserva la duración reservada (no la
// duración actual del servicio) y re-ejecuta todas las guardas del
// write-path contra el nuevo intervalo.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	date string,
	timeStr string,
	actorID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	newStart, err := time.ParseInLocation(
		"2006-01-02 15:04",
		date+" "+timeStr,
		timezone.Location(uc.tz),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	oldDate := ap.StartTime.In(timezone.Location(uc.tz)).Format("2006-01-02")

	duration := ap.EndTime.Sub(ap.StartTime)
	newEnd := newStart.Add(duration)

	// Sin registro para el weekday = día cerrado, no error de infra
	sched, err := uc.repo.GetScheduleForDay(ctx, int(newStart.Weekday()))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	open, close, ok := domain.DayWindow(sched, newStart)
	if !ok || !domain.WithinWindow(open, close, newStart, newEnd) {
		return nil, httperr.ErrBusiness("outside_business_hours")
	}

	loc := newStart.Location()
	dayStart := time.Date(newStart.Year(), newStart.Month(), newStart.Day(), 0, 0, 0, 0, loc)
	blackouts, err := uc.repo.ListBlackouts(ctx, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	for _, b := range blackouts {
		if domain.Overlaps(newStart, newEnd, b.StartTime, b.EndTime) {
			return nil, httperr.ErrBusiness("outside_business_hours")
		}
	}

	// Conflicto + update atómicos; la propia cita queda fuera del
	// conjunto de conflictos
	if err := uc.repo.RescheduleAppointment(ctx, ap, newStart, newEnd); err != nil {
		return nil, err
	}

	uc.cache.InvalidateDay(ctx, oldDate)
	uc.cache.InvalidateDay(ctx, date)

	uc.audit.Dispatch(audit.Event{
		ActorType: "admin",
		ActorID:   &actorID,
		Action:    "appointment_rescheduled",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		Metadata: map[string]any{
			"new_start": newStart,
			"new_end":   newEnd,
		},
	})

	return ap, nil
}
