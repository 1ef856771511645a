package models

import "time"

// TimeBlock is an explicit unavailability range layered over schedule and
// business hours. A nil ProfessionalID blocks the whole business.
type TimeBlock struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index" json:"business_id"`

	ProfessionalID *uint `gorm:"index" json:"professional_id"`

	StartTime time.Time `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time `gorm:"not null;index" json:"end_time"`

	Reason string `gorm:"size:255" json:"reason"`
	Type   string `gorm:"size:20" json:"type"` // vacation | holiday | maintenance | event

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
