package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"nutrilog/internal/nutrition"
)

type totalsCmd struct {
	app    *App
	date   string
	offset string
}

func (*totalsCmd) Name() string     { return "totals" }
func (*totalsCmd) Synopsis() string { return "display the nutrient totals of one day" }
func (*totalsCmd) Usage() string {
	return `nutrilog totals [-d <date>] [-offset <offset>]

  Sums the ledger for a day. The date is YYYY-MM-DD or "now"; the offset
  shifts it, e.g. -1d, -2w, -1m.
`
}

func (c *totalsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", nutrition.Today, `Day to report, YYYY-MM-DD or "now".`)
	f.StringVar(&c.offset, "offset", "", "Offset applied to the day, e.g. -1d.")
}

func (c *totalsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := c.app.aggregator().TotalsForDate(ctx, c.date, c.offset)
	if err != nil {
		if nutrition.IsInputError(err) {
			return c.app.usage("%v", err)
		}
		return c.app.fail("Error computing totals: %v", err)
	}
	return c.app.printMarkdown(dayMarkdown(day))
}

type historyCmd struct {
	app  *App
	days int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display daily totals for recent days" }
func (*historyCmd) Usage() string {
	return `nutrilog history [-days <n>]

  Lists the daily totals of the last n days, newest first. Days without
  entries show zeros.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 0, "Number of days to show (defaults to HISTORY_DAYS).")
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	days := c.days
	if days <= 0 {
		days = c.app.historyDays()
	}
	history, err := c.app.aggregator().Recent(ctx, days)
	if err != nil {
		return c.app.fail("Error computing history: %v", err)
	}
	return c.app.printMarkdown(historyMarkdown(history))
}

type weightsCmd struct {
	app *App
}

func (*weightsCmd) Name() string           { return "weights" }
func (*weightsCmd) Synopsis() string       { return "display every recorded weigh-in" }
func (*weightsCmd) Usage() string          { return "nutrilog weights\n" }
func (*weightsCmd) SetFlags(*flag.FlagSet) {}

func (c *weightsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	points, err := c.app.aggregator().WeighInHistory(ctx)
	if err != nil {
		return c.app.fail("Error loading weigh-ins: %v", err)
	}
	return c.app.printMarkdown(weightsMarkdown(points))
}
