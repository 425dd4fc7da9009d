// Package cli implements the nutrilog terminal commands.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"nutrilog/internal/nutrition"
)

// App carries the dependencies shared by every command.
type App struct {
	Store       nutrition.Store
	Out         io.Writer
	Err         io.Writer
	Now         func() time.Time
	HistoryDays int
	// Style selects a glamour standard style. Empty picks one from the
	// terminal; "raw" writes the markdown untouched.
	Style string
}

// Register adds every nutrilog command to c.
func Register(c *subcommands.Commander, app *App) {
	c.Register(&foodsCmd{app: app}, "foods")
	c.Register(&ingredientCmd{app: app}, "foods")
	c.Register(&recipeCmd{app: app}, "foods")

	c.Register(&previewCmd{app: app}, "ledger")
	c.Register(&logCmd{app: app}, "ledger")
	c.Register(&weighCmd{app: app}, "ledger")

	c.Register(&totalsCmd{app: app}, "reports")
	c.Register(&historyCmd{app: app}, "reports")
	c.Register(&weightsCmd{app: app}, "reports")
}

func (a *App) out() io.Writer {
	if a.Out == nil {
		return os.Stdout
	}
	return a.Out
}

func (a *App) errOut() io.Writer {
	if a.Err == nil {
		return os.Stderr
	}
	return a.Err
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) historyDays() int {
	if a.HistoryDays <= 0 {
		return 30
	}
	return a.HistoryDays
}

func (a *App) recorder() *nutrition.Recorder {
	return nutrition.NewRecorder(a.Store).WithClock(a.now)
}

func (a *App) aggregator() *nutrition.Aggregator {
	return nutrition.NewAggregator(a.Store).WithClock(a.now)
}

// fail reports err on the error stream and returns ExitFailure.
func (a *App) fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(a.errOut(), format+"\n", args...)
	return subcommands.ExitFailure
}

func (a *App) usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(a.errOut(), format+"\n", args...)
	return subcommands.ExitUsageError
}

// printMarkdown renders md for the terminal.
func (a *App) printMarkdown(md string) subcommands.ExitStatus {
	if a.Style == "raw" {
		fmt.Fprint(a.out(), md)
		return subcommands.ExitSuccess
	}

	style := glamour.WithAutoStyle()
	if a.Style != "" {
		style = glamour.WithStandardStyle(a.Style)
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return a.fail("Error creating renderer: %v", err)
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return a.fail("Error rendering output: %v", err)
	}
	fmt.Fprint(a.out(), rendered)
	return subcommands.ExitSuccess
}

// parseReference reads "<name...> <amount> <unit>". Names may span several
// arguments.
func parseReference(args []string) (nutrition.Reference, error) {
	if len(args) < 3 {
		return nutrition.Reference{}, fmt.Errorf("expected <name> <amount> <unit>, got %d arguments", len(args))
	}
	n := len(args)
	return nutrition.Reference{
		Name:   strings.Join(args[:n-2], " "),
		Amount: args[n-2],
		Unit:   args[n-1],
	}, nil
}
