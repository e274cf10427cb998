package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

func NewServer(port string, logger *slog.Logger, svcs Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      NewHandler(logger, svcs),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}

// ReminderSweeper is implemented by service.TaskService.
type ReminderSweeper interface {
	SweepReminders(ctx context.Context) (int, error)
}

// RunReminders sweeps reminders every interval until ctx is done.
func RunReminders(ctx context.Context, logger *slog.Logger, tasks ReminderSweeper, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := tasks.SweepReminders(ctx)
			if err != nil {
				logger.Error("reminder sweep failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Info("reminder sweep", "processed", n)
			}
		}
	}
}
