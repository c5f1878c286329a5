package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-curatorform/components/curatorform"
	"github.com/goliatone/go-curatorform/internal/config"
	"github.com/goliatone/go-curatorform/internal/httpserver"
	"github.com/goliatone/go-curatorform/internal/logging"
	"github.com/goliatone/go-curatorform/pkg/curator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}
	config.LogEnvStatus(cfg, logger)

	formCfg, err := config.LoadFormConfig(cfg.FormConfigPath)
	if err != nil {
		log.Fatalf("Failed to load form config: %v", err)
	}

	srv, err := httpserver.New(cfg, logger,
		curatorform.WithFormConfig(formCfg),
		curatorform.WithSubmitHandler(func(_ context.Context, profile curator.Profile) error {
			logger.Info("curator_profile_accepted", slog.Any("profile", profile.Redacted()))
			return nil
		}),
	)
	if err != nil {
		log.Fatalf("Failed to build server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
