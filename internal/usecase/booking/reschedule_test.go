package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/mdbarber/booking-api/internal/domain/booking"
	"github.com/mdbarber/booking-api/internal/httperr"
	"github.com/mdbarber/booking-api/internal/models"
)

func seedAppointment(repo *fakeRepo, d time.Time, h int, durationMin int, status domain.Status) *models.Appointment {
	ap := &models.Appointment{
		ID:        repo.nextID,
		StartTime: testAt(d, h, 0),
		EndTime:   testAt(d, h, 0).Add(time.Duration(durationMin) * time.Minute),
		Price:     150,
		Status:    string(status),
	}
	repo.nextID++
	repo.appointments = append(repo.appointments, ap)
	return ap
}

func newRescheduleUC(repo *fakeRepo) *RescheduleAppointment {
	return NewRescheduleAppointment(repo, nil, nil, testTZ)
}

func TestRescheduleMovesAndConfirms(t *testing.T) {
	repo := newFakeRepo()
	repo.openDay(int(time.Wednesday), "09:00", "18:00")

	d := testDate(t)
	ap := seedAppointment(repo, d, 10, 45, domain.StatusPending)

	uc := newRescheduleUC(repo)

	got, err := uc.Execute(context.Background(), ap.ID, "2026-03-04", "14:00", 1)
	require.NoError(t, err)

	require.Equal(t, "14:00", got.StartTime.Format("15:04"))
	require.Equal(t, string(domain.StatusConfirmed), got.Status)

	// Conserva la duración reservada
	require.Equal(t, 45*time.Minute, got.EndTime.Sub(got.StartTime))
}

func TestRescheduleFromTerminalState(t *testing.T) {
	repo := newFakeRepo()
	repo.openDay(int(time.Wednesday), "09:00", "18:00")

	d := testDate(t)
	cancelledAt := testAt(d, 8, 0)
	ap := seedAppointment(repo, d, 10, 60, domain.StatusCancelled)
	ap.CancelledAt = &cancelledAt

	uc := newRescheduleUC(repo)

	got, err := uc.Execute(context.Background(), ap.ID, "2026-03-04", "15:00", 1)
	require.NoError(t, err)

	// Reagendar revive la cita: vuelve a confirmed y limpia marcas
	require.Equal(t, string(domain.StatusConfirmed), got.Status)
	require.Nil(t, got.CancelledAt)
	require.Nil(t, got.CompletedAt)
}

func TestRescheduleExcludesSelfFromConflicts(t *testing.T) {
	repo := newFakeRepo()
	repo.openDay(int(time.Wednesday), "09:00", "18:00")

	d := testDate(t)
	ap := seedAppointment(repo, d, 10, 60, domain.StatusConfirmed)

	uc := newRescheduleUC(repo)

	// Moverla media hora dentro de su propio intervalo no es conflicto
	got, err := uc.Execute(context.Background(), ap.ID, "2026-03-04", "10:30", 1)
	require.NoError(t, err)
	require.Equal(t, "10:30", got.StartTime.Format("15:04"))
}

func TestRescheduleRejectsConflictWithOther(t *testing.T) {
	repo := newFakeRepo()
	repo.openDay(int(time.Wednesday), "09:00", "18:00")

	d := testDate(t)
	ap := seedAppointment(repo, d, 10, 60, domain.StatusConfirmed)
	seedAppointment(repo, d, 14, 60, domain.StatusConfirmed)

	uc := newRescheduleUC(repo)

	_, err := uc.Execute(context.Background(), ap.ID, "2026-03-04", "14:30", 1)
	require.True(t, httperr.IsBusiness(err, "time_conflict"))
}

func TestRescheduleOutsideWindow(t *testing.T) {
	repo := newFakeRepo()
	repo.openDay(int(time.Wednesday), "09:00", "18:00")

	d := testDate(t)
	ap := seedAppointment(repo, d, 10, 60, domain.StatusConfirmed)

	uc := newRescheduleUC(repo)

	_, err := uc.Execute(context.Background(), ap.ID, "2026-03-04", "17:30", 1)
	require.True(t, httperr.IsBusiness(err, "outside_business_hours"))
}

func TestRescheduleUnknownAppointment(t *testing.T) {
	repo := newFakeRepo()
	repo.openDay(int(time.Wednesday), "09:00", "18:00")

	uc := newRescheduleUC(repo)

	_, err := uc.Execute(context.Background(), 99, "2026-03-04", "10:00", 1)
	require.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestUpdateStatusFlow(t *testing.T) {
	repo := newFakeRepo()
	repo.openDay(int(time.Wednesday), "09:00", "18:00")

	d := testDate(t)
	ap := seedAppointment(repo, d, 10, 60, domain.StatusPending)

	uc := NewUpdateStatus(repo, nil, nil, testTZ)

	got, err := uc.Execute(context.Background(), ap.ID, domain.StatusConfirmed, "admin", 1)
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusConfirmed), got.Status)

	got, err = uc.Execute(context.Background(), ap.ID, domain.StatusCompleted, "admin", 1)
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusCompleted), got.Status)
	require.NotNil(t, got.CompletedAt)

	// completed es terminal
	_, err = uc.Execute(context.Background(), ap.ID, domain.StatusCancelled, "admin", 1)
	require.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestStatusAndRescheduleInfraErrorIsNotBusiness(t *testing.T) {
	repo := newFakeRepo()
	repo.openDay(int(time.Wednesday), "09:00", "18:00")
	repo.dbErr = errors.New("connection refused")

	_, err := NewUpdateStatus(repo, nil, nil, testTZ).
		Execute(context.Background(), 1, domain.StatusConfirmed, "admin", 1)
	require.Error(t, err)
	require.False(t, httperr.IsBusiness(err, "appointment_not_found"))

	_, err = newRescheduleUC(repo).
		Execute(context.Background(), 1, "2026-03-04", "10:00", 1)
	require.Error(t, err)
	require.False(t, httperr.IsBusiness(err, "appointment_not_found"))

	err = NewDeleteAppointment(repo, nil, nil, testTZ).
		Execute(context.Background(), 1, 1)
	require.Error(t, err)
	require.False(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestDeleteAppointment(t *testing.T) {
	repo := newFakeRepo()
	repo.openDay(int(time.Wednesday), "09:00", "18:00")

	d := testDate(t)
	ap := seedAppointment(repo, d, 10, 60, domain.StatusPending)

	uc := NewDeleteAppointment(repo, nil, nil, testTZ)

	require.NoError(t, uc.Execute(context.Background(), ap.ID, 1))

	_, err := repo.GetAppointmentByID(context.Background(), ap.ID)
	require.Error(t, err)

	err = uc.Execute(context.Background(), 99, 1)
	require.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
