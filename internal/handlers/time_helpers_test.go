package handlers

import (
	"testing"
	"time"
)

const testTZ = "America/Mexico_City"

func TestDateKeyUsesShopTimezone(t *testing.T) {
	// 05 mar 02:00 UTC = 04 mar 20:00 en CDMX (UTC-6)
	utc := time.Date(2026, 3, 5, 2, 0, 0, 0, time.UTC)

	if got := dateKey(testTZ, utc); got != "2026-03-04" {
		t.Fatalf("dateKey = %s, want 2026-03-04", got)
	}
}

func TestParseDateTimeInShopTimezone(t *testing.T) {
	got, err := parseDateTime(testTZ, "2026-03-04", "10:30")
	if err != nil {
		t.Fatalf("parseDateTime: %v", err)
	}

	if got.Format("2006-01-02 15:04") != "2026-03-04 10:30" {
		t.Fatalf("unexpected parsed time: %s", got)
	}
	if got.Location().String() != testTZ {
		t.Fatalf("parsed in %s, want %s", got.Location(), testTZ)
	}
}

func TestDayBounds(t *testing.T) {
	loc, err := time.LoadLocation(testTZ)
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	start, end := dayBounds(time.Date(2026, 3, 4, 15, 45, 0, 0, loc))
	if start.Hour() != 0 || start.Day() != 4 {
		t.Fatalf("unexpected start: %s", start)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Fatalf("unexpected span: %s", end.Sub(start))
	}
}
