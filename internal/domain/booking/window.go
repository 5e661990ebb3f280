package booking

import (
	"time"

	"github.com/mdbarber/booking-api/internal/models"
)

// DayWindow materializa el horario semanal sobre una fecha concreta.
// ok=false cuando el día está cerrado (sin registro, inactivo o con
// horas inválidas): eso NO es un error, significa cero disponibilidad.
func DayWindow(s *models.WeeklySchedule, date time.Time) (open, close time.Time, ok bool) {
	if s == nil || !s.Active || s.OpenTime == "" || s.CloseTime == "" {
		return time.Time{}, time.Time{}, false
	}

	open, okOpen := atClock(date, s.OpenTime)
	close, okClose := atClock(date, s.CloseTime)
	if !okOpen || !okClose || close.Before(open) {
		return time.Time{}, time.Time{}, false
	}

	return open, close, true
}

// WithinWindow: [start, end) contenido por completo en [open, close].
func WithinWindow(open, close, start, end time.Time) bool {
	return !start.Before(open) && !end.After(close)
}

func atClock(date time.Time, hm string) (time.Time, bool) {
	t, err := time.Parse(clockLayout, hm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), true
}
