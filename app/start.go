package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Start serves the HTTP API until ctx is cancelled, then drains in-flight requests.
func (app *App) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", app.Config.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", app.Config.HTTP.Addr, err)
	}
	return app.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (app *App) Serve(ctx context.Context, ln net.Listener) error {
	logger := app.Observability.Logger

	srv := &http.Server{
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "HTTP server listening", slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
