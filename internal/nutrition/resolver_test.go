package nutrition

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"nutrilog/models"
)

func TestResolveScenarios(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(seededStore())
	cases := []struct {
		name string
		ref  Reference
		want models.Nutrients
	}{
		{
			name: "mass ingredient scales per 100",
			ref:  Reference{Name: "rice", Amount: "200", Unit: "grams"},
			want: models.Nutrients{Protein: 5.4, Carbohydrate: 56, Fat: 0.6, Kcals: 260},
		},
		{
			name: "count ingredient scales per item",
			ref:  Reference{Name: "egg", Amount: "3", Unit: "each"},
			want: models.Nutrients{Protein: 39, Carbohydrate: 3.3, Fat: 33, Kcals: 465},
		},
		{
			name: "container converts through serving size",
			ref:  Reference{Name: "cola", Amount: "2", Unit: "can"},
			want: models.Nutrients{Protein: 0, Carbohydrate: 69.96, Fat: 0, Kcals: 277.2},
		},
		{
			name: "base unit of container ingredient",
			ref:  Reference{Name: "cola", Amount: "50", Unit: "mL"},
			want: models.Nutrients{Carbohydrate: 5.3, Kcals: 21},
		},
		{
			name: "name is normalised for ingredients",
			ref:  Reference{Name: "  Rice ", Amount: "100", Unit: "grams"},
			want: models.Nutrients{Protein: 2.7, Carbohydrate: 28, Fat: 0.3, Kcals: 130},
		},
		{
			name: "zero amount",
			ref:  Reference{Name: "egg", Amount: "0", Unit: "each"},
			want: models.Nutrients{},
		},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := resolver.Resolve(context.Background(), tt.ref)
			if err != nil {
				t.Fatalf("Resolve(%+v) returned error: %v", tt.ref, err)
			}
			assertNutrients(t, got.Nutrients, tt.want)
		})
	}
}

func TestResolveEchoesReference(t *testing.T) {
	t.Parallel()

	got, err := NewResolver(seededStore()).Resolve(context.Background(), Reference{Name: "egg", Amount: "2.5", Unit: "each"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got.Name != "egg" || got.Amount != 2.5 || got.Unit != "each" {
		t.Fatalf("unexpected echoed reference: %+v", got)
	}
}

func TestResolveErrors(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(seededStore())
	cases := []struct {
		name string
		ref  Reference
		want error
	}{
		{"unknown unit", Reference{Name: "rice", Amount: "1", Unit: "kg"}, ErrUnrecognizedUnit},
		{"container unit on plain ingredient", Reference{Name: "rice", Amount: "1", Unit: "can"}, ErrUnrecognizedUnit},
		{"empty unit", Reference{Name: "egg", Amount: "1", Unit: ""}, ErrUnrecognizedUnit},
		{"unknown food", Reference{Name: "durian", Amount: "1", Unit: "each"}, ErrNotFound},
		{"empty name", Reference{Name: " ", Amount: "1", Unit: "each"}, ErrEmptyName},
		{"negative amount", Reference{Name: "egg", Amount: "-1", Unit: "each"}, ErrInvalidAmount},
		{"text amount", Reference{Name: "egg", Amount: "two", Unit: "each"}, ErrInvalidAmount},
		{"blank amount", Reference{Name: "egg", Amount: "", Unit: "each"}, ErrInvalidAmount},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := resolver.Resolve(context.Background(), tt.ref)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Resolve(%+v) error = %v, want %v", tt.ref, err, tt.want)
			}
			if got != (Totals{}) {
				t.Fatalf("expected zero totals on error, got %+v", got)
			}
		})
	}
}

func TestResolveRecipeIgnoresUnit(t *testing.T) {
	t.Parallel()

	store := seededStore()
	store.recipes["soup"] = models.Recipe{
		Name:      "soup",
		Nutrients: models.Nutrients{Protein: 9.2, Carbohydrate: 28.55, Fat: 5.8, Kcals: 207.5},
		Portions:  2,
	}
	resolver := NewResolver(store)

	for _, unit := range []string{"", "bowl", "grams"} {
		got, err := resolver.Resolve(context.Background(), Reference{Name: "soup", Amount: "1.5", Unit: unit})
		if err != nil {
			t.Fatalf("Resolve(soup, %q) returned error: %v", unit, err)
		}
		assertNutrients(t, got.Nutrients, models.Nutrients{Protein: 13.8, Carbohydrate: 42.825, Fat: 8.7, Kcals: 311.25})
	}
}

func TestResolvePrefersIngredientOverRecipe(t *testing.T) {
	t.Parallel()

	store := seededStore()
	store.recipes["egg"] = models.Recipe{Name: "egg", Nutrients: models.Nutrients{Kcals: 1000}}

	food, err := Lookup(context.Background(), store, "egg")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if food.Kind() != IngredientFood {
		t.Fatalf("expected ingredient, got %s", food.Kind())
	}
	if _, ok := food.Recipe(); ok {
		t.Fatal("ingredient food must not expose a recipe")
	}
}

func TestFoodTotalsProperties(t *testing.T) {
	t.Parallel()

	rate := models.Nutrients{Protein: 3.3, Carbohydrate: 7.1, Fat: 0.9, Kcals: 51}
	each := IngredientRef(models.Ingredient{Name: "bun", Nutrients: rate, Unit: "each"})
	mass := IngredientRef(models.Ingredient{Name: "oats", Nutrients: rate, Unit: "g"})
	bottle := IngredientRef(models.Ingredient{Name: "milk", Nutrients: rate, Unit: "ml", ServingSize: floatPtr(250), ContainerName: "bottle"})

	for _, raw := range []string{"0", "0.5", "1", "3", "17.25", "1000"} {
		a := decimal.RequireFromString(raw)
		af := a.InexactFloat64()

		got, err := each.Totals(a, "each")
		if err != nil {
			t.Fatalf("each.Totals(%s) returned error: %v", raw, err)
		}
		assertNutrients(t, got, models.Nutrients{Protein: 3.3 * af, Carbohydrate: 7.1 * af, Fat: 0.9 * af, Kcals: 51 * af})

		got, err = mass.Totals(a, "g")
		if err != nil {
			t.Fatalf("mass.Totals(%s) returned error: %v", raw, err)
		}
		f := af / 100
		assertNutrients(t, got, models.Nutrients{Protein: 3.3 * f, Carbohydrate: 7.1 * f, Fat: 0.9 * f, Kcals: 51 * f})

		got, err = bottle.Totals(a, "bottle")
		if err != nil {
			t.Fatalf("bottle.Totals(%s) returned error: %v", raw, err)
		}
		f = 2.5 * af
		assertNutrients(t, got, models.Nutrients{Protein: 3.3 * f, Carbohydrate: 7.1 * f, Fat: 0.9 * f, Kcals: 51 * f})
	}
}

func TestFoodTotalsContainerWithoutServingSize(t *testing.T) {
	t.Parallel()

	food := IngredientRef(models.Ingredient{Name: "juice", Unit: "ml", ContainerName: "carton", Nutrients: models.Nutrients{Kcals: 40}})
	if _, err := food.Totals(decimal.NewFromInt(1), "carton"); !errors.Is(err, ErrUnrecognizedUnit) {
		t.Fatalf("expected ErrUnrecognizedUnit, got %v", err)
	}
}

func TestParseAmountAndPortions(t *testing.T) {
	t.Parallel()

	if _, err := ParseAmount(" 12.5 "); err != nil {
		t.Fatalf("ParseAmount returned error: %v", err)
	}
	if _, err := ParseAmount("0"); err != nil {
		t.Fatalf("ParseAmount(0) returned error: %v", err)
	}
	if _, err := ParsePortions("0"); !errors.Is(err, ErrInvalidPortions) {
		t.Fatalf("ParsePortions(0) error = %v, want ErrInvalidPortions", err)
	}
	if _, err := ParsePortions("-2"); !errors.Is(err, ErrInvalidPortions) {
		t.Fatalf("ParsePortions(-2) error = %v, want ErrInvalidPortions", err)
	}
	if _, err := ParsePortions("many"); !errors.Is(err, ErrInvalidPortions) {
		t.Fatalf("ParsePortions(many) error = %v, want ErrInvalidPortions", err)
	}
}
