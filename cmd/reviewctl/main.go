package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/fr0stylo/shopreviews/internal/observability"
)

var Version = "dev"

func main() {
	slog.SetDefault(observability.NewLogger(os.Stderr, slog.LevelWarn))
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
