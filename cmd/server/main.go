package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"country-directory-service/internal/config"
	"country-directory-service/internal/logging"
	"country-directory-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg, logger, err := bootstrap()
	if err != nil {
		logging.Error(logger, "invalid configuration", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}

// bootstrap reads .env and the environment, builds the logger, and validates
// the result. The logger is usable even when err is non-nil.
func bootstrap() (config.Config, *slog.Logger, error) {
	dotenvErr := config.LoadDotEnv()
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
	})
	if dotenvErr != nil {
		logging.Debug(logger, "no .env file loaded", logging.FieldError, dotenvErr)
	}
	return cfg, logger, cfg.Validate()
}
