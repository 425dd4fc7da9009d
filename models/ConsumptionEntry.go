package models

import "time"

// ConsumptionEntry is an append-only ledger row holding the absolute nutrient
// totals of one logged food.
type ConsumptionEntry struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Name   string  `gorm:"not null" json:"name"`
	Amount float64 `gorm:"not null" json:"amount"`
	Unit   string  `json:"unit"`
	Nutrients
	EntryTime time.Time `gorm:"not null" json:"entry_time"`
	EntryDate string    `gorm:"size:10;not null;index" json:"entry_date"`
}
