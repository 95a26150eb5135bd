package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

func NewHandler(logger *slog.Logger) http.Handler {
	analyze := NewAnalyzeHandler(logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", NewPingHandler().PingHandler)
	mux.HandleFunc("POST /api/v1/analyze", analyze.Analyze)

	return mux
}

// Start - runs the HTTP server until ctx is done. It returns once in-flight
// requests have finished or the shutdown timeout has passed.
func Start(ctx context.Context, logger *slog.Logger, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewHandler(logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	// ListenAndServe returns as soon as Shutdown starts
	if err := <-shutdownErr; err != nil {
		logger.Error("failed to shutdown HTTP server", "error", err)
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
