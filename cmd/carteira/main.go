// Command carteira is the scriptable front end: summaries, imports, exports
// and plan changes from the shell.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/carteira/internal/app"
	"github.com/MrJamesThe3rd/carteira/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	e := &env{
		out: os.Stdout,
		now: time.Now,
		open: func() (*app.App, func() error, error) {
			return app.Open(cfg)
		},
	}
	defer e.close()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	register(commander, e)

	flag.BoolVar(&e.raw, "raw", false, "print markdown without terminal styling")
	flag.Parse()

	status := commander.Execute(context.Background())
	e.close()
	os.Exit(int(status))
}

func register(c *subcommands.Commander, e *env) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&summaryCmd{env: e}, "reports")
	c.Register(&listCmd{env: e}, "reports")
	c.Register(&addCmd{env: e}, "transactions")
	c.Register(&importCmd{env: e}, "transactions")
	c.Register(&exportCmd{env: e}, "transactions")
	c.Register(&learnCmd{env: e}, "transactions")
	c.Register(&planCmd{env: e}, "account")
}
