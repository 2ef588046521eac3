package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"portfolioBenchBot/internal/cli"
	"portfolioBenchBot/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	boot := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	config.LoadDotEnv(boot)
	cfg, err := config.LoadLocal()
	if err != nil {
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	if os.Getenv("DB_PATH") == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			cfg.DBPath = filepath.Join(dir, "portfolio", "prices.db")
		}
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cli.Register(commander, &cli.App{
		Config: cfg,
		Log:    cfg.Logger(os.Stderr, true),
		Out:    os.Stdout,
	})

	flag.Parse()
	os.Exit(int(commander.Execute(ctx)))
}
