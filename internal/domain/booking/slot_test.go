package booking

import (
	"testing"
	"time"

	"github.com/mdbarber/booking-api/internal/models"
)

func day(t *testing.T) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/Mexico_City")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	// miércoles
	return time.Date(2026, 3, 4, 0, 0, 0, 0, loc)
}

func at(base time.Time, h, m int) time.Time {
	return time.Date(base.Year(), base.Month(), base.Day(), h, m, 0, 0, base.Location())
}

func TestGenerateSlotsHourlyAnchors(t *testing.T) {
	d := day(t)
	open := at(d, 9, 0)
	close := at(d, 18, 0)

	slots := GenerateSlots(open, close, 30*time.Minute)

	// 09:00 .. 17:00, paso de una hora aunque el servicio dure 30 min
	if len(slots) != 9 {
		t.Fatalf("expected 9 slots, got %d", len(slots))
	}
	if !slots[0].Equal(at(d, 9, 0)) {
		t.Fatalf("expected first slot 09:00, got %s", slots[0].Format("15:04"))
	}
	if !slots[8].Equal(at(d, 17, 0)) {
		t.Fatalf("expected last slot 17:00, got %s", slots[8].Format("15:04"))
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].Sub(slots[i-1]) != time.Hour {
			t.Fatalf("slots not hourly at index %d", i)
		}
	}
}

func TestGenerateSlotsClosingIsInclusive(t *testing.T) {
	d := day(t)
	open := at(d, 9, 0)
	close := at(d, 18, 0)

	// Un servicio de 60 min que empieza a las 17:00 termina exactamente
	// al cierre y sigue siendo válido.
	slots := GenerateSlots(open, close, 60*time.Minute)
	last := slots[len(slots)-1]
	if !last.Equal(at(d, 17, 0)) {
		t.Fatalf("expected last slot 17:00, got %s", last.Format("15:04"))
	}

	// Con 90 min el candidato de las 17:00 ya no cabe.
	slots = GenerateSlots(open, close, 90*time.Minute)
	last = slots[len(slots)-1]
	if !last.Equal(at(d, 16, 0)) {
		t.Fatalf("expected last slot 16:00, got %s", last.Format("15:04"))
	}
}

func TestGenerateSlotsDegenerateInputs(t *testing.T) {
	d := day(t)

	if got := GenerateSlots(at(d, 9, 0), at(d, 8, 0), time.Hour); len(got) != 0 {
		t.Fatalf("close before open should yield no slots, got %d", len(got))
	}
	if got := GenerateSlots(at(d, 9, 0), at(d, 18, 0), 0); len(got) != 0 {
		t.Fatalf("zero duration should yield no slots, got %d", len(got))
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	d := day(t)

	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"separados", at(d, 9, 0), at(d, 10, 0), at(d, 11, 0), at(d, 12, 0), false},
		{"espalda con espalda", at(d, 9, 0), at(d, 10, 0), at(d, 10, 0), at(d, 11, 0), false},
		{"solape parcial", at(d, 9, 0), at(d, 10, 30), at(d, 10, 0), at(d, 11, 0), true},
		{"contenido", at(d, 10, 0), at(d, 10, 30), at(d, 9, 0), at(d, 12, 0), true},
		{"identico", at(d, 9, 0), at(d, 10, 0), at(d, 9, 0), at(d, 10, 0), true},
	}

	for _, tc := range cases {
		if got := Overlaps(tc.s1, tc.e1, tc.s2, tc.e2); got != tc.want {
			t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFilterConflictsSkipsCancelled(t *testing.T) {
	d := day(t)
	candidates := GenerateSlots(at(d, 9, 0), at(d, 12, 0), time.Hour)

	appointments := []models.Appointment{
		{StartTime: at(d, 10, 0), EndTime: at(d, 11, 0), Status: "confirmed"},
		{StartTime: at(d, 11, 0), EndTime: at(d, 12, 0), Status: "cancelled"},
	}

	out := FilterConflicts(candidates, time.Hour, appointments)

	// 10:00 bloqueado; 11:00 libre porque la cita está cancelada
	if len(out) != 2 {
		t.Fatalf("expected 2 free slots, got %d", len(out))
	}
	if !out[0].Equal(at(d, 9, 0)) || !out[1].Equal(at(d, 11, 0)) {
		t.Fatalf("unexpected free slots: %v", out)
	}
}

func TestFilterConflictsBackToBack(t *testing.T) {
	d := day(t)
	candidates := GenerateSlots(at(d, 9, 0), at(d, 12, 0), time.Hour)

	appointments := []models.Appointment{
		{StartTime: at(d, 10, 0), EndTime: at(d, 11, 0), Status: "pending"},
	}

	out := FilterConflicts(candidates, time.Hour, appointments)

	// 09:00-10:00 y 11:00-12:00 tocan la cita sin solaparla
	if len(out) != 2 {
		t.Fatalf("expected 2 free slots, got %d", len(out))
	}
}

func TestFilterConflictsIsPureAndOrdered(t *testing.T) {
	d := day(t)
	candidates := GenerateSlots(at(d, 9, 0), at(d, 14, 0), time.Hour)
	snapshot := make([]time.Time, len(candidates))
	copy(snapshot, candidates)

	appointments := []models.Appointment{
		{StartTime: at(d, 11, 0), EndTime: at(d, 12, 0), Status: "confirmed"},
	}

	out := FilterConflicts(candidates, time.Hour, appointments)

	for i := range snapshot {
		if !candidates[i].Equal(snapshot[i]) {
			t.Fatal("input slice was mutated")
		}
	}
	for i := 1; i < len(out); i++ {
		if !out[i-1].Before(out[i]) {
			t.Fatal("output not in ascending order")
		}
	}
}

func TestFilterBlackouts(t *testing.T) {
	d := day(t)
	candidates := GenerateSlots(at(d, 9, 0), at(d, 13, 0), time.Hour)

	blackouts := []models.BlackoutPeriod{
		{StartTime: at(d, 10, 30), EndTime: at(d, 11, 30)},
	}

	out := FilterBlackouts(candidates, time.Hour, blackouts)

	// 10:00 y 11:00 pisan el bloqueo; quedan 09:00 y 12:00
	if len(out) != 2 {
		t.Fatalf("expected 2 free slots, got %d", len(out))
	}
	if !out[0].Equal(at(d, 9, 0)) || !out[1].Equal(at(d, 12, 0)) {
		t.Fatalf("unexpected free slots: %v", out)
	}
}

func TestLabels(t *testing.T) {
	d := day(t)
	starts := []time.Time{at(d, 9, 0), at(d, 10, 0)}

	slots := Labels(starts, 30*time.Minute)

	if len(slots) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(slots))
	}
	if slots[0].Start != "09:00" || slots[0].End != "09:30" {
		t.Fatalf("unexpected first label: %+v", slots[0])
	}
	if slots[1].Start != "10:00" || slots[1].End != "10:30" {
		t.Fatalf("unexpected second label: %+v", slots[1])
	}
}
