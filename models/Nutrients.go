package models

// Nutrients holds the four tracked macro values. Depending on the owner they
// are a rate (Ingredient), a per-portion absolute (Recipe) or an absolute total
// (ConsumptionEntry, DailyTotals).
type Nutrients struct {
	Protein      float64 `gorm:"not null;default:0" json:"protein"`
	Carbohydrate float64 `gorm:"not null;default:0" json:"carbohydrate"`
	Fat          float64 `gorm:"not null;default:0" json:"fat"`
	Kcals        float64 `gorm:"not null;default:0" json:"kcals"`
}

// Add returns the component-wise sum of n and other.
func (n Nutrients) Add(other Nutrients) Nutrients {
	return Nutrients{
		Protein:      n.Protein + other.Protein,
		Carbohydrate: n.Carbohydrate + other.Carbohydrate,
		Fat:          n.Fat + other.Fat,
		Kcals:        n.Kcals + other.Kcals,
	}
}

// IsZero reports whether every nutrient value is zero.
func (n Nutrients) IsZero() bool {
	return n == Nutrients{}
}

// DailyTotals is the per-day aggregate of the consumption ledger. It is a
// query projection and has no table of its own.
type DailyTotals struct {
	EntryDate string `json:"date"`
	Nutrients
}
