package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mdbarber/booking-api/internal/audit"
	"github.com/mdbarber/booking-api/internal/cache"
	domain "github.com/mdbarber/booking-api/internal/domain/booking"
	"github.com/mdbarber/booking-api/internal/httperr"
	"github.com/mdbarber/booking-api/internal/timezone"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
	tz    string
}

func NewDeleteAppointment(
	repo domain.Repository,
	auditor *audit.Dispatcher,
	c *cache.Availability,
	tz string,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: auditor,
		cache: c,
		tz:    tz,
	}
}

// Borrado administrativo duro; no hay tombstones.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	actorID uint,
) error {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("appointment_not_found")
		}
		return err
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return err
	}

	uc.cache.InvalidateDay(ctx, ap.StartTime.In(timezone.Location(uc.tz)).Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		ActorType: "admin",
		ActorID:   &actorID,
		Action:    "appointment_deleted",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return nil
}
