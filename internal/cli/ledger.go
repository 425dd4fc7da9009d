package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"nutrilog/internal/nutrition"
)

type previewCmd struct {
	app *App
}

func (*previewCmd) Name() string     { return "preview" }
func (*previewCmd) Synopsis() string { return "show the nutrients of a food without logging it" }
func (*previewCmd) Usage() string {
	return `nutrilog preview <name> <amount> <unit>

  Resolves the reference and prints its totals. Nothing is recorded.
`
}

func (*previewCmd) SetFlags(*flag.FlagSet) {}

func (c *previewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ref, err := parseReference(f.Args())
	if err != nil {
		return c.app.usage("%v", err)
	}
	totals, err := nutrition.NewResolver(c.app.Store).Resolve(ctx, ref)
	if err != nil {
		return c.app.fail("Error resolving %q: %v", ref.Name, err)
	}
	return c.app.printMarkdown(totalsMarkdown("Preview", totals))
}

type logCmd struct {
	app *App
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "record a food in the consumption ledger" }
func (*logCmd) Usage() string {
	return `nutrilog log <name> <amount> <unit>

  Resolves the reference and appends it to today's ledger. Recipes are
  measured in portions whatever unit is given.
`
}

func (*logCmd) SetFlags(*flag.FlagSet) {}

func (c *logCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ref, err := parseReference(f.Args())
	if err != nil {
		return c.app.usage("%v", err)
	}
	totals, err := c.app.recorder().Record(ctx, ref)
	if err != nil {
		return c.app.fail("Error logging %q: %v", ref.Name, err)
	}
	return c.app.printMarkdown(totalsMarkdown("Logged", totals))
}

type weighCmd struct {
	app *App
}

func (*weighCmd) Name() string     { return "weigh" }
func (*weighCmd) Synopsis() string { return "record a body weight measurement" }
func (*weighCmd) Usage() string {
	return `nutrilog weigh <weight>
`
}

func (*weighCmd) SetFlags(*flag.FlagSet) {}

func (c *weighCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage("weigh expects exactly one weight, got %d arguments", f.NArg())
	}
	entry, err := c.app.recorder().RecordWeighIn(ctx, f.Arg(0))
	if err != nil {
		if errors.Is(err, nutrition.ErrInvalidWeight) {
			return c.app.usage("%v", err)
		}
		return c.app.fail("Error recording weight: %v", err)
	}
	fmt.Fprintf(c.app.out(), "Recorded %s on %s\n", formatValue(entry.Weight), entry.EntryDate)
	return subcommands.ExitSuccess
}
