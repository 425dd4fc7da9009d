package cli

import (
	"context"
	"flag"
	"strings"

	"github.com/google/subcommands"

	"nutrilog/internal/nutrition"
	"nutrilog/models"
)

type foodsCmd struct {
	app *App
}

func (*foodsCmd) Name() string     { return "foods" }
func (*foodsCmd) Synopsis() string { return "list every ingredient and recipe name" }
func (*foodsCmd) Usage() string {
	return `nutrilog foods

  Lists the ingredient and recipe names that log, preview and recipe accept.
`
}

func (*foodsCmd) SetFlags(*flag.FlagSet) {}

func (c *foodsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	names, err := nutrition.NewCatalog(c.app.Store).Names(ctx)
	if err != nil {
		return c.app.fail("Error listing foods: %v", err)
	}
	return c.app.printMarkdown(namesMarkdown(names))
}

type ingredientCmd struct {
	app *App

	protein      float64
	carbohydrate float64
	fat          float64
	kcals        float64
	unit         string
	serving      float64
	container    string
}

func (*ingredientCmd) Name() string     { return "ingredient" }
func (*ingredientCmd) Synopsis() string { return "add an ingredient to the catalog" }
func (*ingredientCmd) Usage() string {
	return `nutrilog ingredient [-protein <g>] [-carbs <g>] [-fat <g>] [-kcals <kcal>] [-unit <unit>] [-serving <size> -container <name>] <name>

  Adds an ingredient. Nutrients are per 100 units, or per item when the unit
  is "each". A container (can, bottle, ...) needs the serving size it holds.
`
}

func (c *ingredientCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.protein, "protein", 0, "Protein per 100 units (or per item).")
	f.Float64Var(&c.carbohydrate, "carbs", 0, "Carbohydrate per 100 units (or per item).")
	f.Float64Var(&c.fat, "fat", 0, "Fat per 100 units (or per item).")
	f.Float64Var(&c.kcals, "kcals", 0, "Energy per 100 units (or per item).")
	f.StringVar(&c.unit, "unit", "grams", `Base unit, e.g. grams, mL or "each".`)
	f.Float64Var(&c.serving, "serving", 0, "Base units held by one container.")
	f.StringVar(&c.container, "container", "", "Container name, e.g. can.")
}

func (c *ingredientCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := strings.Join(f.Args(), " ")
	if strings.TrimSpace(name) == "" {
		return c.app.usage("ingredient requires a name")
	}

	ingredient := models.Ingredient{
		Name: name,
		Nutrients: models.Nutrients{
			Protein:      c.protein,
			Carbohydrate: c.carbohydrate,
			Fat:          c.fat,
			Kcals:        c.kcals,
		},
		Unit:          c.unit,
		ContainerName: c.container,
	}
	if c.serving != 0 || c.container != "" {
		serving := c.serving
		ingredient.ServingSize = &serving
	}

	stored, err := nutrition.NewCatalog(c.app.Store).AddIngredient(ctx, ingredient)
	if err != nil {
		return c.app.fail("Error adding ingredient: %v", err)
	}
	return c.app.printMarkdown(ingredientMarkdown(stored))
}
