package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/nkorotkov/privateme/internal/buildinfo"
	"github.com/nkorotkov/privateme/internal/client/cli"
	"github.com/nkorotkov/privateme/internal/client/config"
	"github.com/nkorotkov/privateme/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	// keep the REPL readable, only warnings and errors hit stderr
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{Level: slog.LevelWarn})))

	app, err := cli.NewApp(cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
