package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mdbarber/booking-api/internal/audit"
	"github.com/mdbarber/booking-api/internal/cache"
	domain "github.com/mdbarber/booking-api/internal/domain/booking"
	"github.com/mdbarber/booking-api/internal/httperr"
	"github.com/mdbarber/booking-api/internal/models"
	"github.com/mdbarber/booking-api/internal/timezone"
)

type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
	tz    string
}

func NewUpdateStatus(
	repo domain.Repository,
	auditor *audit.Dispatcher,
	c *cache.Availability,
	tz string,
) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		audit: auditor,
		cache: c,
		tz:    tz,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	appointmentID uint,
	to domain.Status,
	actorType string,
	actorID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	now := timezone.NowIn(uc.tz)
	if err := domain.Transition(ap, to, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// Cancelar libera el slot para ese día
	uc.cache.InvalidateDay(ctx, ap.StartTime.In(timezone.Location(uc.tz)).Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		ActorType: actorType,
		ActorID:   &actorID,
		Action:    "appointment_" + string(to),
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
