package nutrition

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"nutrilog/models"
)

// Reference is a user-entered (name, amount, unit) triple.
type Reference struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// Totals are the absolute nutrients of a resolved reference.
type Totals struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
	models.Nutrients
}

// Resolver turns references into absolute nutrient totals. It only reads from
// its finder.
type Resolver struct {
	finder FoodFinder
}

// NewResolver builds a Resolver reading foods from finder.
func NewResolver(finder FoodFinder) *Resolver {
	return &Resolver{finder: finder}
}

// Resolve looks the reference up and computes its totals.
func (r *Resolver) Resolve(ctx context.Context, ref Reference) (Totals, error) {
	if r == nil || r.finder == nil {
		return Totals{}, errors.New("nutrition: resolver has no store")
	}

	amount, err := ParseAmount(ref.Amount)
	if err != nil {
		return Totals{}, err
	}

	food, err := Lookup(ctx, r.finder, ref.Name)
	if err != nil {
		return Totals{}, err
	}

	nutrients, err := food.Totals(amount, ref.Unit)
	if err != nil {
		return Totals{}, err
	}

	return Totals{
		Name:      strings.TrimSpace(ref.Name),
		Amount:    amount.InexactFloat64(),
		Unit:      strings.TrimSpace(ref.Unit),
		Nutrients: nutrients,
	}, nil
}

// Totals computes the absolute nutrients of amount of f measured in unit.
//
// Recipes scale their per-portion values by amount and ignore unit. An
// ingredient measured in its base unit scales by amount (count units) or by
// amount/100; measured in its container it scales by servingSize/100*amount.
func (f Food) Totals(amount decimal.Decimal, unit string) (models.Nutrients, error) {
	switch f.kind {
	case RecipeFood:
		return scaleNutrients(f.recipe.Nutrients, amount), nil
	case IngredientFood:
		factor, err := ingredientFactor(f.ingredient, amount, unit)
		if err != nil {
			return models.Nutrients{}, err
		}
		return scaleNutrients(f.ingredient.Nutrients, factor), nil
	default:
		return models.Nutrients{}, fmt.Errorf("%w: empty food reference", ErrNotFound)
	}
}

func ingredientFactor(ingredient models.Ingredient, amount decimal.Decimal, unit string) (decimal.Decimal, error) {
	unit = strings.TrimSpace(unit)

	if sameUnit(unit, ingredient.Unit) {
		if ingredient.IsCountBased() {
			return amount, nil
		}
		return amount.Div(hundred), nil
	}

	if strings.TrimSpace(ingredient.ContainerName) != "" && sameUnit(unit, ingredient.ContainerName) {
		if !ingredient.HasContainer() {
			return decimal.Zero, fmt.Errorf("%w: %q has no serving size for %q", ErrUnrecognizedUnit, ingredient.Name, unit)
		}
		serving := decimal.NewFromFloat(*ingredient.ServingSize)
		return serving.Div(hundred).Mul(amount), nil
	}

	return decimal.Zero, fmt.Errorf("%w: %q for %q", ErrUnrecognizedUnit, unit, ingredient.Name)
}

func sameUnit(a, b string) bool {
	b = strings.TrimSpace(b)
	return b != "" && strings.EqualFold(a, b)
}
