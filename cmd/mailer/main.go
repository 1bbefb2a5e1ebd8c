package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"userapi/internal/app/consumers"
	"userapi/internal/app/deps"
	"userapi/internal/core/domain/logging"
)

func main() {
	deps, shutdownDeps := deps.InitMailerDeps()
	defer shutdownDeps()

	shutdownConsumers := consumers.InitConsumers(deps)
	defer shutdownConsumers()

	stopCh, closeCh := createChannel()
	defer closeCh()

	deps.Logger.Info(
		context.Background(),
		"Mailer is waiting for emails.",
		logging.Entry("queue", deps.Config.RabbitmqResetLinkQueue),
	)
	<-stopCh
	deps.Logger.Info(context.Background(), "Stopping mailer.")
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
