package nutrition

import (
	"context"
	"fmt"
	"strings"

	"nutrilog/models"
)

// FoodKind tags the variant held by a Food.
type FoodKind int

const (
	IngredientFood FoodKind = iota + 1
	RecipeFood
)

func (k FoodKind) String() string {
	switch k {
	case IngredientFood:
		return "ingredient"
	case RecipeFood:
		return "recipe"
	default:
		return "unknown"
	}
}

// Food is the result of a name lookup: either an ingredient or a recipe.
type Food struct {
	kind       FoodKind
	ingredient models.Ingredient
	recipe     models.Recipe
}

// IngredientRef wraps an ingredient as a Food.
func IngredientRef(ingredient models.Ingredient) Food {
	return Food{kind: IngredientFood, ingredient: ingredient}
}

// RecipeRef wraps a recipe as a Food.
func RecipeRef(recipe models.Recipe) Food {
	return Food{kind: RecipeFood, recipe: recipe}
}

// Kind returns the variant tag.
func (f Food) Kind() FoodKind { return f.kind }

// Name returns the stored name of the wrapped food.
func (f Food) Name() string {
	if f.kind == RecipeFood {
		return f.recipe.Name
	}
	return f.ingredient.Name
}

// Ingredient returns the wrapped ingredient when Kind is IngredientFood.
func (f Food) Ingredient() (models.Ingredient, bool) {
	return f.ingredient, f.kind == IngredientFood
}

// Recipe returns the wrapped recipe when Kind is RecipeFood.
func (f Food) Recipe() (models.Recipe, bool) {
	return f.recipe, f.kind == RecipeFood
}

// Lookup finds name as an ingredient first and then as a recipe.
func Lookup(ctx context.Context, finder FoodFinder, name string) (Food, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Food{}, ErrEmptyName
	}

	ingredient, found, err := finder.FindIngredientByName(ctx, models.NormalizeName(trimmed))
	if err != nil {
		return Food{}, fmt.Errorf("find ingredient %q: %w", trimmed, err)
	}
	if found {
		return IngredientRef(ingredient), nil
	}

	recipe, found, err := finder.FindRecipeByName(ctx, trimmed)
	if err != nil {
		return Food{}, fmt.Errorf("find recipe %q: %w", trimmed, err)
	}
	if found {
		return RecipeRef(recipe), nil
	}

	return Food{}, fmt.Errorf("%w: %q", ErrNotFound, trimmed)
}
