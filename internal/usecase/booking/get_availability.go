package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mdbarber/booking-api/internal/cache"
	domain "github.com/mdbarber/booking-api/internal/domain/booking"
	"github.com/mdbarber/booking-api/internal/httperr"
)

type GetAvailability struct {
	repo  domain.Repository
	cache *cache.Availability
}

func NewGetAvailability(repo domain.Repository, c *cache.Availability) *GetAvailability {
	return &GetAvailability{repo: repo, cache: c}
}

// Execute calcula los slots disponibles de un día para un servicio:
// generar candidatos → filtrar citas existentes → filtrar bloqueos.
// Día cerrado devuelve lista vacía, nunca error.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	service, err := uc.repo.GetServiceByID(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, err
	}

	dateKey := in.Date.Format("2006-01-02")
	if slots, ok := uc.cache.Get(ctx, dateKey, service.ID); ok {
		return slots, nil
	}

	// Sin registro para el weekday = día cerrado; cualquier otro error
	// del repositorio sí sube.
	sched, err := uc.repo.GetScheduleForDay(ctx, int(in.Date.Weekday()))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	open, close, ok := domain.DayWindow(sched, in.Date)
	if !ok {
		return []domain.TimeSlot{}, nil
	}

	loc := in.Date.Location()
	dayStart := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	appointments, err := uc.repo.ListAppointmentsForDay(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	blackouts, err := uc.repo.ListBlackouts(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(service.DurationMin) * time.Minute

	candidates := domain.GenerateSlots(open, close, duration)
	candidates = domain.FilterConflicts(candidates, duration, appointments)
	candidates = domain.FilterBlackouts(candidates, duration, blackouts)

	slots := domain.Labels(candidates, duration)

	uc.cache.Set(ctx, dateKey, service.ID, slots)

	return slots, nil
}
