package handlers

import (
	"time"

	"github.com/mdbarber/booking-api/internal/timezone"
)

// Toda fecha que llega por la API se interpreta en el timezone de la
// barbería, nunca en el del servidor.

func parseDate(tz, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(tz),
	)
}

func parseDateTime(tz, dateStr, timeStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		timezone.Location(tz),
	)
}

func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}

// dateKey produce la clave de cache del día al que pertenece el
// instante SEGÚN la barbería; un instante cerca de medianoche puede
// caer en otra fecha si se formatea en la zona del servidor.
func dateKey(tz string, t time.Time) string {
	return t.In(timezone.Location(tz)).Format("2006-01-02")
}
