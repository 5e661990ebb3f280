package booking

import (
	"time"

	"github.com/mdbarber/booking-api/internal/models"
)

// SlotStep es el paso fijo entre candidatos: los slots se anclan a la
// hora en punto desde la apertura, sin importar la duración del
// servicio.
const SlotStep = 60 * time.Minute

const clockLayout = "15:04"

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Overlaps evalúa solapamiento entre [s1,e1) y [s2,e2). Intervalos
// half-open: terminar exactamente cuando otro empieza NO es conflicto.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// GenerateSlots produce los inicios candidatos del día en orden
// ascendente: opening + k*SlotStep mientras candidato+duración quepa
// en [open, close]. Tocar exactamente la hora de cierre está permitido.
func GenerateSlots(open, close time.Time, duration time.Duration) []time.Time {
	if duration <= 0 || close.Before(open) {
		return nil
	}

	var slots []time.Time
	for cur := open; !cur.Add(duration).After(close); cur = cur.Add(SlotStep) {
		slots = append(slots, cur)
	}
	return slots
}

// FilterConflicts descarta candidatos que solapan una cita existente no
// cancelada. Función pura: no muta sus entradas.
func FilterConflicts(
	candidates []time.Time,
	duration time.Duration,
	appointments []models.Appointment,
) []time.Time {

	out := make([]time.Time, 0, len(candidates))

	for _, start := range candidates {
		end := start.Add(duration)

		conflict := false
		for _, ap := range appointments {
			if Status(ap.Status) == StatusCancelled {
				continue
			}
			if Overlaps(start, end, ap.StartTime, ap.EndTime) {
				conflict = true
				break
			}
		}

		if !conflict {
			out = append(out, start)
		}
	}

	return out
}

// FilterBlackouts descarta candidatos que caen dentro de un bloqueo de
// agenda (vacaciones, festivos). Misma regla de solapamiento.
func FilterBlackouts(
	candidates []time.Time,
	duration time.Duration,
	blackouts []models.BlackoutPeriod,
) []time.Time {

	if len(blackouts) == 0 {
		return candidates
	}

	out := make([]time.Time, 0, len(candidates))

	for _, start := range candidates {
		end := start.Add(duration)

		blocked := false
		for _, b := range blackouts {
			if Overlaps(start, end, b.StartTime, b.EndTime) {
				blocked = true
				break
			}
		}

		if !blocked {
			out = append(out, start)
		}
	}

	return out
}

// Labels formatea los inicios como etiquetas de reloj HH:mm.
func Labels(starts []time.Time, duration time.Duration) []TimeSlot {
	slots := make([]TimeSlot, 0, len(starts))
	for _, s := range starts {
		slots = append(slots, TimeSlot{
			Start: s.Format(clockLayout),
			End:   s.Add(duration).Format(clockLayout),
		})
	}
	return slots
}
