package models

import "time"

// WeighIn is an append-only body weight measurement.
type WeighIn struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Weight    float64   `gorm:"not null" json:"weight"`
	EntryTime time.Time `gorm:"not null" json:"entry_time"`
	EntryDate string    `gorm:"size:10;not null;index" json:"entry_date"`
}
