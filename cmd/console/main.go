package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/muesli/termenv"

	app "github.com/rocketscienceinc/tictactoe-ai/internal"
	"github.com/rocketscienceinc/tictactoe-ai/internal/config"
	"github.com/rocketscienceinc/tictactoe-ai/internal/console"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	conf, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// logs go to stderr so they don't mix with the board
	var level slog.Level
	if err = level.UnmarshalText([]byte(conf.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	difficulty, err := entity.ParseDifficulty(conf.Bot.Difficulty)
	if err != nil {
		return fmt.Errorf("invalid bot difficulty in config: %w", err)
	}

	ctx, cancel := app.SignalContext(logger)
	defer cancel()

	gameManager, closeStorage, err := app.NewGameManager(ctx, logger, conf)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := closeStorage(); closeErr != nil {
			logger.Error("could not close storage", "error", closeErr)
		}
	}()

	out := termenv.NewOutput(os.Stdout)

	return console.New(logger, gameManager, os.Stdin, out, difficulty).Run(ctx)
}
