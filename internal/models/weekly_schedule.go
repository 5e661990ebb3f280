package models

import "time"

// Un registro por día de la semana (0 = domingo ... 6 = sábado).
// Admin lo administra vía upsert idempotente por weekday.
type WeeklySchedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Weekday   int    `gorm:"uniqueIndex;not null" json:"weekday"`
	OpenTime  string `gorm:"size:5" json:"open_time"`  // HH:mm
	CloseTime string `gorm:"size:5" json:"close_time"` // HH:mm
	Active    bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
