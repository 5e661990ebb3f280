package booking

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/mdbarber/booking-api/internal/domain/booking"
	"github.com/mdbarber/booking-api/internal/httperr"
	"github.com/mdbarber/booking-api/internal/models"
)

// El repositorio real devuelve gorm.ErrRecordNotFound; el fake usa el
// mismo centinela para que los use cases lo distingan de fallas de
// infraestructura.
var errNotFound = gorm.ErrRecordNotFound

// fakeRepo implementa domain.Repository en memoria con la misma regla
// de conflicto que el repositorio real. Con dbErr definido todas las
// lecturas fallan, simulando una base de datos caída.
type fakeRepo struct {
	services     map[uint]*models.Service
	schedules    map[int]*models.WeeklySchedule
	blackouts    []models.BlackoutPeriod
	appointments []*models.Appointment
	nextID       uint
	dbErr        error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:  make(map[uint]*models.Service),
		schedules: make(map[int]*models.WeeklySchedule),
		nextID:    1,
	}
}

func (f *fakeRepo) addService(id uint, price float64, durationMin int) {
	f.services[id] = &models.Service{
		ID:          id,
		Name:        "Corte clásico",
		Price:       price,
		DurationMin: durationMin,
		Active:      true,
	}
}

func (f *fakeRepo) openDay(weekday int, open, close string) {
	f.schedules[weekday] = &models.WeeklySchedule{
		Weekday:   weekday,
		Active:    true,
		OpenTime:  open,
		CloseTime: close,
	}
}

var _ domain.Repository = (*fakeRepo)(nil)

func (f *fakeRepo) GetServiceByID(_ context.Context, id uint) (*models.Service, error) {
	if f.dbErr != nil {
		return nil, f.dbErr
	}
	s, ok := f.services[id]
	if !ok {
		return nil, errNotFound
	}
	return s, nil
}

func (f *fakeRepo) GetScheduleForDay(_ context.Context, weekday int) (*models.WeeklySchedule, error) {
	if f.dbErr != nil {
		return nil, f.dbErr
	}
	s, ok := f.schedules[weekday]
	if !ok {
		return nil, errNotFound
	}
	return s, nil
}

func (f *fakeRepo) ListBlackouts(_ context.Context, start, end time.Time) ([]models.BlackoutPeriod, error) {
	var out []models.BlackoutPeriod
	for _, b := range f.blackouts {
		if domain.Overlaps(b.StartTime, b.EndTime, start, end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) hasConflict(start, end time.Time, excludeID uint) bool {
	for _, ap := range f.appointments {
		if ap.ID == excludeID || ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if domain.Overlaps(start, end, ap.StartTime, ap.EndTime) {
			return true
		}
	}
	return false
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if f.hasConflict(ap.StartTime, ap.EndTime, 0) {
		return httperr.ErrBusiness("time_conflict")
	}
	ap.ID = f.nextID
	f.nextID++
	f.appointments = append(f.appointments, ap)
	return nil
}

func (f *fakeRepo) RescheduleAppointment(_ context.Context, ap *models.Appointment, newStart, newEnd time.Time) error {
	if f.hasConflict(newStart, newEnd, ap.ID) {
		return httperr.ErrBusiness("time_conflict")
	}
	ap.StartTime = newStart
	ap.EndTime = newEnd
	ap.Status = string(domain.StatusConfirmed)
	ap.CancelledAt = nil
	ap.CompletedAt = nil
	return nil
}

func (f *fakeRepo) GetAppointmentByID(_ context.Context, id uint) (*models.Appointment, error) {
	if f.dbErr != nil {
		return nil, f.dbErr
	}
	for _, ap := range f.appointments {
		if ap.ID == id {
			return ap, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetAppointmentForClient(_ context.Context, id, clientID uint) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == id && ap.ClientID != nil && *ap.ClientID == clientID {
			return ap, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i, cur := range f.appointments {
		if cur.ID == ap.ID {
			f.appointments[i] = ap
			return nil
		}
	}
	return errNotFound
}

func (f *fakeRepo) DeleteAppointment(_ context.Context, id uint) error {
	for i, ap := range f.appointments {
		if ap.ID == id {
			f.appointments = append(f.appointments[:i], f.appointments[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

func (f *fakeRepo) ListAppointmentsForDay(_ context.Context, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForClient(_ context.Context, clientID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ClientID != nil && *ap.ClientID == clientID {
			out = append(out, *ap)
		}
	}
	return out, nil
}
