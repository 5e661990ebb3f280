package models

import "time"

// Bloqueo absoluto de agenda (vacaciones, días festivos). Intervalo
// [start, end) igual que las citas.
type BlackoutPeriod struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Reason    string    `gorm:"size:100" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
