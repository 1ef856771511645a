package models

import "time"

type Business struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	Timezone string `gorm:"size:64" json:"timezone"`

	// SlotIntervalMinutes is the global slot step; professionals may override
	// it with a custom buffer. It spaces candidate start times only and is not
	// a mandatory gap between bookings.
	SlotIntervalMinutes int `gorm:"default:30" json:"slot_interval_minutes"`
	MinAdvanceMinutes   int `gorm:"default:120" json:"min_advance_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
