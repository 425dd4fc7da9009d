package models

import (
	"strings"

	"gorm.io/gorm"
)

// CountUnit is the base unit of ingredients whose rates are given per single item.
const CountUnit = "each"

// Ingredient is a measurable food. Its nutrients are rates: per 100 base units
// for mass/volume ingredients, per single item when Unit is CountUnit.
type Ingredient struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null" json:"name"`
	Nutrients
	Unit          string   `gorm:"not null" json:"unit"`
	ServingSize   *float64 `json:"serving_size,omitempty"`
	ContainerName string   `json:"container_name,omitempty"`
}

// NormalizeName canonicalises an ingredient name for storage and lookup.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IsCountBased reports whether the ingredient is measured in items rather than mass or volume.
func (i Ingredient) IsCountBased() bool {
	return strings.EqualFold(strings.TrimSpace(i.Unit), CountUnit)
}

// HasContainer reports whether the ingredient can be measured in containers.
func (i Ingredient) HasContainer() bool {
	return strings.TrimSpace(i.ContainerName) != "" && i.ServingSize != nil && *i.ServingSize > 0
}
