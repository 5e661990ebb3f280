package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/mdbarber/booking-api/internal/domain/booking"
	"github.com/mdbarber/booking-api/internal/httperr"
	"github.com/mdbarber/booking-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetServiceByID(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *BookingGormRepository) GetScheduleForDay(
	ctx context.Context,
	weekday int,
) (*models.WeeklySchedule, error) {

	var sched models.WeeklySchedule
	if err := r.db.WithContext(ctx).
		Where("weekday = ?", weekday).
		First(&sched).Error; err != nil {
		return nil, err
	}

	return &sched, nil
}

// --------------------------------------------------
// Blackouts
// --------------------------------------------------

func (r *BookingGormRepository) ListBlackouts(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.BlackoutPeriod, error) {

	var blackouts []models.BlackoutPeriod
	if err := r.db.WithContext(ctx).
		Where("start_time < ? AND end_time > ?", end, start).
		Order("start_time ASC").
		Find(&blackouts).Error; err != nil {
		return nil, err
	}

	return blackouts, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// CreateAppointment re-verifica el solapamiento y crea la cita dentro
// de una transacción con FOR UPDATE. El constraint de exclusión de
// Postgres cierra la carrera que la verificación de aplicación no
// puede: el segundo escritor concurrente recibe 23P01, que mapeamos al
// mismo error de negocio.
func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"status <> ? AND start_time < ? AND end_time > ?",
				string(domain.StatusCancelled), ap.EndTime, ap.StartTime,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(ap).Error
	})

	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("time_conflict")
	}
	return err
}

func (r *BookingGormRepository) RescheduleAppointment(
	ctx context.Context,
	ap *models.Appointment,
	newStart time.Time,
	newEnd time.Time,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"id <> ? AND status <> ? AND start_time < ? AND end_time > ?",
				ap.ID, string(domain.StatusCancelled), newEnd, newStart,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		// Reagendar re-entra al grafo en confirmed
		ap.StartTime = newStart
		ap.EndTime = newEnd
		ap.Status = string(domain.StatusConfirmed)
		ap.CancelledAt = nil
		ap.CompletedAt = nil

		return tx.Save(ap).Error
	})

	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("time_conflict")
	}
	return err
}

// --------------------------------------------------
// Appointment (read / state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *BookingGormRepository) GetAppointmentForClient(
	ctx context.Context,
	id uint,
	clientID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND client_id = ?", id, clientID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *BookingGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, id).Error
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *BookingGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status").
		Where(
			"status <> ? AND start_time >= ? AND start_time < ?",
			string(domain.StatusCancelled), start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *BookingGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"start_time >= ? AND start_time < ?",
			start, end,
		).
		Order("start_time DESC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *BookingGormRepository) ListAppointmentsForClient(
	ctx context.Context,
	clientID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Service").
		Where("client_id = ?", clientID).
		Order("start_time DESC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
