package booking

import (
	"time"

	"github.com/mdbarber/booking-api/internal/httperr"
	"github.com/mdbarber/booking-api/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// completed y cancelled son terminales
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Domain Actions
// ===============================

// Transition aplica un cambio de estado sobre la cita, validando el
// grafo pending → {confirmed, cancelled}, confirmed → {completed, cancelled}.
func Transition(ap *models.Appointment, to Status, now time.Time) error {
	if !to.Valid() {
		return httperr.ErrBusiness("invalid_status")
	}
	if !CanTransition(Status(ap.Status), to) {
		return httperr.ErrBusiness("invalid_state")
	}

	ap.Status = string(to)
	switch to {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
	return nil
}
