package models

import "time"

// WeeklySchedule is one professional's working window for one weekday. A break
// pair, when present, carves an unavailable sub-interval strictly inside the
// working window. Active=false means not working that day regardless of times.
type WeeklySchedule struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"index" json:"professional_id"`

	Weekday int `json:"weekday"`

	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
	Active     bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
