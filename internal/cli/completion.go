package cli

import (
	"context"
	"strings"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"nutrilog/internal/nutrition"
)

// Completion describes the command tree for shell completion. Food arguments
// complete from the catalog.
func Completion(ctx context.Context, app *App) *complete.Command {
	foods := complete.PredictFunc(func(prefix string) []string {
		return foodNames(ctx, app.Store, prefix)
	})
	noValue := predict.Set{}
	offsets := predict.Set{"-1d", "-7d", "-1w", "-1m", "-1y"}

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"foods": {},
			"ingredient": {
				Flags: map[string]complete.Predictor{
					"protein":   noValue,
					"carbs":     noValue,
					"fat":       noValue,
					"kcals":     noValue,
					"unit":      predict.Set{"grams", "mL", "each"},
					"serving":   noValue,
					"container": predict.Set{"can", "bottle", "carton", "jar"},
				},
			},
			"recipe": {
				Flags: map[string]complete.Predictor{"portions": noValue},
				Args:  foods,
			},
			"preview": {Args: foods},
			"log":     {Args: foods},
			"weigh":   {},
			"totals": {
				Flags: map[string]complete.Predictor{
					"d":      predict.Set{nutrition.Today},
					"offset": offsets,
				},
			},
			"history": {Flags: map[string]complete.Predictor{"days": predict.Set{"7", "14", "30"}}},
			"weights": {},
		},
	}
}

func foodNames(ctx context.Context, store nutrition.Store, prefix string) []string {
	names, err := nutrition.NewCatalog(store).Names(ctx)
	if err != nil {
		return nil
	}
	prefix = strings.ToLower(prefix)
	var matches []string
	for _, group := range [][]string{names.Ingredients, names.Recipes} {
		for _, name := range group {
			if strings.HasPrefix(strings.ToLower(name), prefix) {
				matches = append(matches, name)
			}
		}
	}
	return matches
}
