package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/gridiron-sim/internal/config"
	"github.com/preston-bernstein/gridiron-sim/internal/logging"
	"github.com/preston-bernstein/gridiron-sim/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
	})
	logger.Info("config loaded",
		slog.String("port", cfg.Port),
		slog.String(logging.FieldProvider, cfg.Provider),
		slog.String("event_profile", cfg.Simulation.EventProfile),
		slog.Duration("tick_interval", cfg.Simulation.TickInterval),
		slog.Int("max_active_games", cfg.Simulation.MaxActiveGames),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}
