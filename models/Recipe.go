package models

import (
	"gorm.io/gorm"
)

// Recipe is a composite food. Unlike Ingredient its nutrients are already
// normalised to a single portion and it carries no unit.
type Recipe struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null" json:"name"`
	Nutrients
	Portions   float64           `gorm:"not null;default:1" json:"portions"`
	Components []RecipeComponent `gorm:"foreignKey:RecipeID" json:"components"`
}

// RecipeComponent records one line of a recipe definition exactly as it was entered.
type RecipeComponent struct {
	gorm.Model
	RecipeID uint   `gorm:"not null;index" json:"recipe_id"`
	Position int    `gorm:"not null" json:"position"`
	Name     string `gorm:"not null" json:"name"`
	Amount   string `gorm:"not null" json:"amount"`
	Unit     string `json:"unit"`
}
