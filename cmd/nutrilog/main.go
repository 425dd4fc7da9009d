package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/google/subcommands"
	"gorm.io/gorm"

	"nutrilog/internal/cli"
	"nutrilog/internal/config"
	"nutrilog/internal/db"
	"nutrilog/internal/db/mock"
	applog "nutrilog/internal/log"
	"nutrilog/internal/store"
)

var openDatabase = func(ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	if cfg.Database.UseMock {
		return mock.New(ctx)
	}
	return db.Configure(cfg.Database)
}

func main() {
	os.Exit(run(context.Background(), path.Base(os.Args[0]), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return int(subcommands.ExitFailure)
	}
	// Commands print their own reports; keep engine logging to warnings.
	if err := applog.SetLevel("warn"); err != nil {
		fmt.Fprintln(stderr, err)
	}

	database, err := openDatabase(ctx, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening database: %v\n", err)
		return int(subcommands.ExitFailure)
	}
	st, err := store.New(database)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening store: %v\n", err)
		return int(subcommands.ExitFailure)
	}

	app := &cli.App{
		Store:       st,
		Out:         stdout,
		Err:         stderr,
		HistoryDays: cfg.History.Days,
	}

	// Returns immediately unless invoked by the shell for completion.
	cli.Completion(ctx, app).Complete(name)

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(stderr)
	style := flags.String("style", "", `Glamour style for reports (dark, light, notty, ...; "raw" prints markdown).`)
	commander := subcommands.NewCommander(flags, name)
	commander.Output = stdout
	commander.Error = stderr
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cli.Register(commander, app)

	if err := flags.Parse(args); err != nil {
		return int(subcommands.ExitUsageError)
	}
	app.Style = *style

	return int(commander.Execute(ctx))
}
