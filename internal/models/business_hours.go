package models

import "time"

// BusinessHours holds the single open/close pair for one weekday. There is no
// split-shift support at the business level; professionals carve their own
// schedule inside this window.
type BusinessHours struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index" json:"business_id"`

	Weekday int `json:"weekday"` // 0=Sunday .. 6=Saturday

	OpenTime  string `json:"open_time"`  // "HH:MM", 24h
	CloseTime string `json:"close_time"` // "HH:MM", 24h
	Closed    bool   `gorm:"default:false" json:"closed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
