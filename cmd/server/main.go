package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"github.com/youruser/deckcode/internal/api"
	"github.com/youruser/deckcode/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	configPath := pflag.String("config", "", "path to YAML config (default $"+config.EnvPath+")")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("loading config", "error", err)
		return 2
	}

	gin.SetMode(cfg.Server.Mode)
	handler, err := api.NewHandler(cfg, logger)
	if err != nil {
		logger.Error("building handler", "error", err)
		return 2
	}

	r := gin.Default()
	api.RegisterRoutes(r, handler)

	logger.Info("starting server", "addr", cfg.Server.Addr)
	if err := r.Run(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "error", err)
		return 1
	}
	return 0
}
