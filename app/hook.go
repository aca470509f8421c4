package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
)

// WaitForShutdown returns a context cancelled on SIGINT or SIGTERM.
func WaitForShutdown(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// Close stops the modules and closes the database.
func (app *App) Close() error {
	var errs []error
	if app.Modules.Stats != nil {
		errs = append(errs, app.Modules.Stats.Close())
	}
	if app.db != nil {
		errs = append(errs, app.db.Close())
	}
	return errors.Join(errs...)
}
