package nutrition

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"nutrilog/models"
)

var hundred = decimal.NewFromInt(100)

// ParseAmount parses a non-negative decimal quantity.
func ParseAmount(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}
	return amount, nil
}

// ParsePortions parses a strictly positive portion count.
func ParsePortions(value string) (decimal.Decimal, error) {
	portions, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil || !portions.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPortions, value)
	}
	return portions, nil
}

// scaleNutrients multiplies every nutrient by factor using decimal arithmetic
// so that per-100 rescaling does not accumulate binary rounding error.
func scaleNutrients(n models.Nutrients, factor decimal.Decimal) models.Nutrients {
	mul := func(v float64) float64 {
		return decimal.NewFromFloat(v).Mul(factor).InexactFloat64()
	}
	return models.Nutrients{
		Protein:      mul(n.Protein),
		Carbohydrate: mul(n.Carbohydrate),
		Fat:          mul(n.Fat),
		Kcals:        mul(n.Kcals),
	}
}

// nutrientSum accumulates nutrients exactly.
type nutrientSum struct {
	protein, carbohydrate, fat, kcals decimal.Decimal
}

func (s *nutrientSum) add(n models.Nutrients) {
	s.protein = s.protein.Add(decimal.NewFromFloat(n.Protein))
	s.carbohydrate = s.carbohydrate.Add(decimal.NewFromFloat(n.Carbohydrate))
	s.fat = s.fat.Add(decimal.NewFromFloat(n.Fat))
	s.kcals = s.kcals.Add(decimal.NewFromFloat(n.Kcals))
}

func (s nutrientSum) divide(by decimal.Decimal) models.Nutrients {
	return models.Nutrients{
		Protein:      s.protein.Div(by).InexactFloat64(),
		Carbohydrate: s.carbohydrate.Div(by).InexactFloat64(),
		Fat:          s.fat.Div(by).InexactFloat64(),
		Kcals:        s.kcals.Div(by).InexactFloat64(),
	}
}
