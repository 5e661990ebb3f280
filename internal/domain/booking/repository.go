package booking

import (
	"context"
	"time"

	"github.com/mdbarber/booking-api/internal/models"
)

type Repository interface {
	// -------- Service --------
	GetServiceByID(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Schedule --------
	GetScheduleForDay(
		ctx context.Context,
		weekday int,
	) (*models.WeeklySchedule, error)

	// -------- Blackouts --------
	ListBlackouts(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.BlackoutPeriod, error)

	// -------- Appointment (create / conflict) --------
	// CreateAppointment ejecuta la verificación de conflicto y el
	// insert dentro de una transacción; devuelve "time_conflict"
	// cuando el intervalo ya está tomado.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// RescheduleAppointment mueve la cita al nuevo intervalo con la
	// misma disciplina transaccional, excluyendo la propia cita del
	// conjunto de conflictos.
	RescheduleAppointment(
		ctx context.Context,
		ap *models.Appointment,
		newStart time.Time,
		newEnd time.Time,
	) error

	// -------- Appointment (read / state change) --------
	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentForClient(
		ctx context.Context,
		id uint,
		clientID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	// -------- Listings --------
	// ListAppointmentsForDay devuelve solo citas NO canceladas del
	// rango, ordenadas por inicio: es el conjunto de conflictos.
	ListAppointmentsForDay(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForClient(
		ctx context.Context,
		clientID uint,
	) ([]models.Appointment, error)
}
