package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"userapi/internal/app"
	"userapi/internal/app/deps"
	"userapi/internal/app/services"

	dl "userapi/internal/core/domain/logging"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	defer shutdownDeps()

	httpServer := app.InitHttpServer(deps, services.InitServices(deps))
	serverErr := make(chan error, 1)
	go func() { serverErr <- serve(httpServer, deps) }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		deps.Logger.Info(context.Background(), "Stop signal received.")
	case err := <-serverErr:
		deps.Logger.Error(context.Background(), "HTTP server failed.", dl.Entry("err", err))
		return
	}

	shutdown(httpServer, deps)
}

func serve(server *http.Server, deps *deps.Deps) error {
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("isTestMode", deps.Config.IsTestMode),
		dl.Entry("passwordHasher", string(deps.Config.PasswordHasher)),
		dl.Entry("notificationTransport", string(deps.Config.NotificationTransport)),
		dl.Entry("locationsCache", deps.LocationsCache != nil),
	)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// shutdown lets in-flight requests finish within the configured timeout
// before the dependencies are closed by main.
func shutdown(server *http.Server, deps *deps.Deps) {
	ctx, cancel := context.WithTimeout(context.Background(), deps.Config.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		deps.Logger.Error(
			ctx,
			"HTTP server did not shut down in time.",
			dl.Entry("err", err),
			dl.Entry("timeout", deps.Config.ShutdownTimeout.String()),
		)
		return
	}
	deps.Logger.Info(ctx, "HTTP server has shut down.")
}
