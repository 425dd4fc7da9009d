package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"nutrilog/internal/nutrition"
)

type recipeCmd struct {
	app      *App
	portions string
}

func (*recipeCmd) Name() string     { return "recipe" }
func (*recipeCmd) Synopsis() string { return "compose a recipe from ingredients and other recipes" }
func (*recipeCmd) Usage() string {
	return `nutrilog recipe [-portions <n>] <name> <food> <amount> <unit> [<food> <amount> <unit> ...]

  Composes a recipe from (food, amount, unit) triples and stores its
  per-portion nutrients. Quote names that contain spaces.
`
}

func (c *recipeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portions, "portions", "1", "Number of portions the recipe makes.")
}

func (c *recipeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	components, name, err := parseRecipeArgs(f.Args())
	if err != nil {
		return c.app.usage("%v", err)
	}

	recipe, err := nutrition.NewComposer(c.app.Store).Compose(ctx, name, components, c.portions)
	if err != nil {
		return c.app.fail("Error composing recipe: %v", err)
	}
	return c.app.printMarkdown(recipeMarkdown(recipe))
}

func parseRecipeArgs(args []string) ([]nutrition.Reference, string, error) {
	if len(args) < 4 {
		return nil, "", fmt.Errorf("recipe requires a name and at least one <food> <amount> <unit> triple")
	}
	rest := args[1:]
	if len(rest)%3 != 0 {
		return nil, "", fmt.Errorf("components must be <food> <amount> <unit> triples, got %d trailing arguments", len(rest)%3)
	}
	components := make([]nutrition.Reference, 0, len(rest)/3)
	for i := 0; i < len(rest); i += 3 {
		components = append(components, nutrition.Reference{Name: rest[i], Amount: rest[i+1], Unit: rest[i+2]})
	}
	return components, args[0], nil
}
