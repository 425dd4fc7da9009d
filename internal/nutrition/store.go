package nutrition

import (
	"context"

	"nutrilog/models"
)

// FoodFinder looks foods up by name. A missing row is reported with
// found == false and a nil error.
type FoodFinder interface {
	FindIngredientByName(ctx context.Context, name string) (models.Ingredient, bool, error)
	FindRecipeByName(ctx context.Context, name string) (models.Recipe, bool, error)
}

// Store is the persistence collaborator consumed by the engine.
type Store interface {
	FoodFinder

	InsertIngredient(ctx context.Context, ingredient *models.Ingredient) error
	InsertRecipe(ctx context.Context, recipe *models.Recipe) error
	AppendConsumption(ctx context.Context, entry *models.ConsumptionEntry) error
	AppendWeighIn(ctx context.Context, entry *models.WeighIn) error

	// RecipeNameTaken reports whether a recipe whose normalized name equals
	// normalized exists.
	RecipeNameTaken(ctx context.Context, normalized string) (bool, error)

	// QueryDailyTotals returns the ledger sums for one calendar day. A day
	// without entries yields no rows.
	QueryDailyTotals(ctx context.Context, day string) ([]models.DailyTotals, error)
	// QueryAllDailyTotals returns one row per day present in the ledger, oldest first.
	QueryAllDailyTotals(ctx context.Context) ([]models.DailyTotals, error)
	// QueryDailyTotalsBetween is QueryAllDailyTotals restricted to [from, to].
	QueryDailyTotalsBetween(ctx context.Context, from, to string) ([]models.DailyTotals, error)
	// QueryWeighIns returns every weigh-in ordered by entry time.
	QueryWeighIns(ctx context.Context) ([]models.WeighIn, error)

	ListIngredientNames(ctx context.Context) ([]string, error)
	ListRecipeNames(ctx context.Context) ([]string, error)

	// Transaction runs fn against a Store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(Store) error) error
}
