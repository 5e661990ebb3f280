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
	"github.com/mdbarber/booking-api/internal/timezone"
)

const testTZ = "America/Mexico_City"

// miércoles 4 de marzo de 2026
func testDate(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2026, 3, 4, 0, 0, 0, 0, timezone.Location(testTZ))
}

func testAt(base time.Time, h, m int) time.Time {
	return time.Date(base.Year(), base.Month(), base.Day(), h, m, 0, 0, base.Location())
}

func TestGetAvailabilityFullDay(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 150, 30)
	repo.openDay(int(time.Wednesday), "09:00", "18:00")

	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: 1,
		Date:      testDate(t),
	})
	require.NoError(t, err)
	require.Len(t, slots, 9)
	require.Equal(t, "09:00", slots[0].Start)
	require.Equal(t, "09:30", slots[0].End)
	require.Equal(t, "17:00", slots[8].Start)
}

func TestGetAvailabilityClosedDayReturnsEmpty(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 150, 30)
	// sin horario configurado para el miércoles

	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: 1,
		Date:      testDate(t),
	})
	require.NoError(t, err)
	require.Empty(t, slots)
}

func TestGetAvailabilityInactiveDayReturnsEmpty(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 150, 30)
	repo.schedules[int(time.Wednesday)] = &models.WeeklySchedule{
		Weekday:   int(time.Wednesday),
		Active:    false,
		OpenTime:  "09:00",
		CloseTime: "18:00",
	}

	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: 1,
		Date:      testDate(t),
	})
	require.NoError(t, err)
	require.Empty(t, slots)
}

func TestGetAvailabilityUnknownService(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGetAvailability(repo, nil)

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: 99,
		Date:      testDate(t),
	})
	require.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestGetAvailabilityInfraErrorIsNotBusiness(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 150, 30)
	repo.openDay(int(time.Wednesday), "09:00", "18:00")
	repo.dbErr = errors.New("connection refused")

	uc := NewGetAvailability(repo, nil)

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: 1,
		Date:      testDate(t),
	})

	// Ni "servicio no encontrado" ni lista vacía de día cerrado
	require.Error(t, err)
	require.False(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestGetAvailabilityExcludesBookedSlots(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 150, 60)
	repo.openDay(int(time.Wednesday), "09:00", "12:00")

	d := testDate(t)
	repo.appointments = append(repo.appointments,
		&models.Appointment{
			ID:        1,
			StartTime: testAt(d, 10, 0),
			EndTime:   testAt(d, 11, 0),
			Status:    "confirmed",
		},
		&models.Appointment{
			ID:        2,
			StartTime: testAt(d, 11, 0),
			EndTime:   testAt(d, 12, 0),
			Status:    "cancelled",
		},
	)

	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: 1,
		Date:      d,
	})
	require.NoError(t, err)

	// 10:00 ocupado; 11:00 libre porque esa cita está cancelada
	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	require.Equal(t, []string{"09:00", "11:00"}, starts)
}

func TestGetAvailabilityExcludesBlackouts(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 150, 60)
	repo.openDay(int(time.Wednesday), "09:00", "13:00")

	d := testDate(t)
	repo.blackouts = append(repo.blackouts, models.BlackoutPeriod{
		ID:        1,
		StartTime: testAt(d, 10, 30),
		EndTime:   testAt(d, 11, 30),
	})

	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: 1,
		Date:      d,
	})
	require.NoError(t, err)

	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	require.Equal(t, []string{"09:00", "12:00"}, starts)
}
