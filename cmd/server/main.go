package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/onepass/internal/logging"
	"github.com/dmitrijs2005/onepass/internal/server"
	"github.com/dmitrijs2005/onepass/internal/server/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "init failed", "error", err.Error())
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "server stopped with error", "error", err.Error())
		app.Close()
		os.Exit(1)
	}

}
