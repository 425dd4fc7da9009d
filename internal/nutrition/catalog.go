package nutrition

import (
	"context"
	"fmt"
	"strings"

	"nutrilog/models"
)

// Names lists the foods available for autocompletion.
type Names struct {
	Ingredients []string `json:"ingredients"`
	Recipes     []string `json:"recipes"`
}

// Catalog creates ingredients and lists food names.
type Catalog struct {
	store Store
}

// NewCatalog builds a Catalog over store.
func NewCatalog(store Store) *Catalog {
	return &Catalog{store: store}
}

// AddIngredient normalises and validates ingredient and inserts it. Names are
// unique across ingredients and recipes.
func (c *Catalog) AddIngredient(ctx context.Context, ingredient models.Ingredient) (models.Ingredient, error) {
	ingredient = normalizeIngredient(ingredient)
	if err := validateIngredient(ingredient); err != nil {
		return models.Ingredient{}, err
	}

	err := c.store.Transaction(ctx, func(tx Store) error {
		if err := ensureNameAvailable(ctx, tx, ingredient.Name); err != nil {
			return err
		}
		if err := tx.InsertIngredient(ctx, &ingredient); err != nil {
			return fmt.Errorf("insert ingredient %q: %w", ingredient.Name, err)
		}
		return nil
	})
	if err != nil {
		return models.Ingredient{}, err
	}
	return ingredient, nil
}

// Names returns every ingredient and recipe name.
func (c *Catalog) Names(ctx context.Context) (Names, error) {
	ingredients, err := c.store.ListIngredientNames(ctx)
	if err != nil {
		return Names{}, fmt.Errorf("list ingredient names: %w", err)
	}
	recipes, err := c.store.ListRecipeNames(ctx)
	if err != nil {
		return Names{}, fmt.Errorf("list recipe names: %w", err)
	}
	if ingredients == nil {
		ingredients = []string{}
	}
	if recipes == nil {
		recipes = []string{}
	}
	return Names{Ingredients: ingredients, Recipes: recipes}, nil
}

func normalizeIngredient(ingredient models.Ingredient) models.Ingredient {
	ingredient.Name = models.NormalizeName(ingredient.Name)
	ingredient.Unit = strings.TrimSpace(ingredient.Unit)
	ingredient.ContainerName = strings.TrimSpace(ingredient.ContainerName)
	if ingredient.ServingSize != nil && *ingredient.ServingSize == 0 && ingredient.ContainerName == "" {
		ingredient.ServingSize = nil
	}
	return ingredient
}

func validateIngredient(ingredient models.Ingredient) error {
	if ingredient.Name == "" {
		return ErrEmptyName
	}
	if ingredient.Unit == "" {
		return fmt.Errorf("%w: %q has no unit", ErrInvalidIngredient, ingredient.Name)
	}
	n := ingredient.Nutrients
	if n.Protein < 0 || n.Carbohydrate < 0 || n.Fat < 0 || n.Kcals < 0 {
		return fmt.Errorf("%w: %q has negative nutrients", ErrInvalidIngredient, ingredient.Name)
	}
	if ingredient.ServingSize != nil && *ingredient.ServingSize <= 0 {
		return fmt.Errorf("%w: %q serving size must be positive", ErrInvalidIngredient, ingredient.Name)
	}
	if ingredient.ContainerName != "" && ingredient.ServingSize == nil {
		return fmt.Errorf("%w: container %q needs a serving size", ErrInvalidIngredient, ingredient.ContainerName)
	}
	if strings.EqualFold(ingredient.ContainerName, ingredient.Unit) {
		return fmt.Errorf("%w: container name %q repeats the base unit", ErrInvalidIngredient, ingredient.ContainerName)
	}
	return nil
}
