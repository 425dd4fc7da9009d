package nutrition

import (
	"context"
	"fmt"
	"strings"

	applog "nutrilog/internal/log"
	"nutrilog/models"
)

// Composer builds per-portion recipes from component references.
type Composer struct {
	store Store
}

// NewComposer builds a Composer persisting into store.
func NewComposer(store Store) *Composer {
	return &Composer{store: store}
}

// Compose resolves every component, divides the summed totals by portions and
// persists the recipe. Any failure leaves the store untouched.
func (c *Composer) Compose(ctx context.Context, name string, components []Reference, portions string) (models.Recipe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Recipe{}, ErrEmptyName
	}
	if len(components) == 0 {
		return models.Recipe{}, ErrEmptyRecipe
	}
	count, err := ParsePortions(portions)
	if err != nil {
		return models.Recipe{}, err
	}

	var recipe models.Recipe
	err = c.store.Transaction(ctx, func(tx Store) error {
		if err := ensureNameAvailable(ctx, tx, name); err != nil {
			return err
		}

		resolver := NewResolver(tx)
		var sum nutrientSum
		lines := make([]models.RecipeComponent, 0, len(components))
		for idx, component := range components {
			totals, err := resolver.Resolve(ctx, component)
			if err != nil {
				return fmt.Errorf("component %d (%s): %w", idx+1, strings.TrimSpace(component.Name), err)
			}
			sum.add(totals.Nutrients)
			lines = append(lines, models.RecipeComponent{
				Position: idx + 1,
				Name:     component.Name,
				Amount:   component.Amount,
				Unit:     component.Unit,
			})
		}

		recipe = models.Recipe{
			Name:       name,
			Nutrients:  sum.divide(count),
			Portions:   count.InexactFloat64(),
			Components: lines,
		}
		if err := tx.InsertRecipe(ctx, &recipe); err != nil {
			return fmt.Errorf("insert recipe %q: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return models.Recipe{}, err
	}

	applog.Debug(ctx, "recipe composed", "name", recipe.Name, "components", len(recipe.Components), "portions", recipe.Portions)
	return recipe, nil
}

// ensureNameAvailable enforces the shared ingredient/recipe namespace.
// Names collide case-insensitively in both directions.
func ensureNameAvailable(ctx context.Context, store Store, name string) error {
	normalized := models.NormalizeName(name)
	if _, found, err := store.FindIngredientByName(ctx, normalized); err != nil {
		return fmt.Errorf("find ingredient %q: %w", name, err)
	} else if found {
		return fmt.Errorf("%w: %q is an ingredient", ErrDuplicateName, name)
	}
	taken, err := store.RecipeNameTaken(ctx, normalized)
	if err != nil {
		return fmt.Errorf("find recipe %q: %w", name, err)
	}
	if taken {
		return fmt.Errorf("%w: %q is a recipe", ErrDuplicateName, name)
	}
	return nil
}
