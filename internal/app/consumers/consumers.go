package consumers

import (
	"context"
	"userapi/internal/app/deps"
	dl "userapi/internal/core/domain/logging"
	sendemail "userapi/internal/core/services/send_email"
	emailreadyforsending "userapi/internal/rabbitmq/consumers/email_ready_for_sending"
)

func initEmailReadyForSendingConsumer(deps *deps.MailerDeps) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqResetLinkQueue
	if err := rabbitmqChannel.DeclareQueue(queue); err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}

	emailReadyForSendingConsumer := emailreadyforsending.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		sendemail.New(deps.Logger, deps.EmailSender, deps.Now),
	)
	if err = emailReadyForSendingConsumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.MailerDeps) func() {
	shutdownEmailReadyForSendingConsumer := initEmailReadyForSendingConsumer(deps)

	return func() {
		shutdownEmailReadyForSendingConsumer()
	}
}
