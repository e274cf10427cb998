// Command taskapi-dev serves the task backend locally, backed by SQLite.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jaekwang-park/taskapp/internal/config"
	taskhttp "github.com/jaekwang-park/taskapp/internal/http"
	"github.com/jaekwang-park/taskapp/internal/repository"
)

func main() {
	// Initial logger at info level; reconfigured after config load
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background()); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()
	if err := cfg.DevServer.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.ParseLogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"port", cfg.DevServer.Port,
		"db_path", cfg.DevServer.DBPath,
		"token_ttl", cfg.DevServer.TokenTTL,
		"reminder_interval", cfg.DevServer.ReminderInterval,
		"log_level", cfg.LogLevel,
	)

	db, err := repository.NewDB(cfg.DevServer.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("database ready")

	svcs := taskhttp.NewServices(db, logger, cfg.DevServer.JWTSecret, cfg.DevServer.TokenTTL)
	srv := taskhttp.NewServer(cfg.DevServer.Port, logger, svcs)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	go taskhttp.RunReminders(ctx, logger, svcs.Tasks, cfg.DevServer.ReminderInterval)

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}
