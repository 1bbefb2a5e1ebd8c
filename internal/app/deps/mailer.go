package deps

import (
	"context"
	"time"
	"userapi/internal/config"
	dl "userapi/internal/core/domain/logging"
	"userapi/internal/core/domain/notification"
	"userapi/internal/implementations/email"
	"userapi/internal/implementations/logging"
	"userapi/internal/rabbitmq"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// MailerDeps is the dependency set of cmd/mailer, which delivers
// queued emails and does not touch the DB.
type MailerDeps struct {
	Config    *config.MailerConfig
	AwsConfig aws.Config
	Logger    dl.Logger
	Rabbitmq  *rabbitmq.Connection

	Now func() time.Time

	EmailSender notification.EmailSender
}

func InitMailerDeps() (*MailerDeps, func()) {
	cfg, err := config.LoadMailer()
	if err != nil {
		panic(err)
	}

	deps := &MailerDeps{Config: cfg}
	logger := logging.NewZapLogger(cfg.IsTestMode)
	deps.Logger = logger
	deps.AwsConfig = newAwsConfig(cfg.AwsRegion, cfg.AwsAccessKey, cfg.AwsSecretKey)
	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.EmailSender = email.NewSESSender(deps.AwsConfig, cfg.AwsEmailSender)

	rabbitmqConnection, err := rabbitmq.Dial(cfg.RabbitmqURL, deps.Logger, cfg.RabbitmqReconnectDelay)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection

	return deps, func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
		logger.Sync()
	}
}
