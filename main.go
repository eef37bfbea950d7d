package main

import (
	"fmt"
	"log/slog"
	"os"

	app "github.com/rocketscienceinc/gomoku-backend/internal"
	"github.com/rocketscienceinc/gomoku-backend/internal/config"
)

const defaultConfigPath = "config.yml"

func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := config.MustLoad(configPath())

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: conf.SlogLevel(),
	}))

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// configPath - resolves the config file location; CONFIG_PATH overrides the
// default next to the binary's working directory.
func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}

	return defaultConfigPath
}
