package deps

import (
	"context"
	"sync"
	"time"
	"userapi/internal/config"
	dcache "userapi/internal/core/domain/cache"
	dl "userapi/internal/core/domain/logging"
	"userapi/internal/core/domain/notification"
	duow "userapi/internal/core/domain/unit_of_work"
	"userapi/internal/core/domain/user"
	"userapi/internal/db"
	uow "userapi/internal/db/unit_of_work"
	dbuser "userapi/internal/db/user"
	"userapi/internal/implementations/cache"
	"userapi/internal/implementations/email"
	"userapi/internal/implementations/logging"
	passwordhasher "userapi/internal/implementations/password_hasher"
	passwordresetter "userapi/internal/implementations/password_resetter"
	resetlink "userapi/internal/implementations/reset_link"
	resettoken "userapi/internal/implementations/reset_token"
	"userapi/internal/rabbitmq"
	emailqueue "userapi/internal/rabbitmq/publishers/email_queue"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	UnitOfWork         duow.UnitOfWork
	UserRepository     user.UserRepository
	LocationRepository user.LocationRepository

	// LocationsCache is nil when REDIS_URL is not configured.
	LocationsCache dcache.Cache

	PasswordHasher      user.PasswordHasher
	ResetTokenGenerator user.ResetTokenGenerator
	PasswordResetter    user.PasswordResetter
	EmailSender         notification.EmailSender
	ResetLinkSender     user.ResetLinkSender
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	deps.initAwsConfig()
	deps.migrate()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	userRepository := dbuser.NewPgxRepository(deps.DB)
	deps.UserRepository = userRepository
	deps.LocationRepository = userRepository
	if deps.Redis != nil {
		deps.LocationsCache = cache.NewRedis(deps.Redis, "userapi")
	}

	deps.PasswordHasher = deps.initPasswordHasher()
	deps.ResetTokenGenerator = resettoken.NewUUIDGenerator()
	deps.PasswordResetter = passwordresetter.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.UserRepository,
		deps.ResetTokenGenerator,
		deps.Config.PasswordResetValidDuration,
		deps.Now,
	)

	closeEmailSender := deps.initEmailSender()
	deps.ResetLinkSender = resetlink.New(
		deps.EmailSender,
		deps.Config.FrontendBaseURL,
		deps.Config.ResetPasswordPath,
	)

	return deps, func() {
		closeFuncs := []func(){
			closeEmailSender,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
		closeLogger()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.IsTestMode)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initAwsConfig() {
	if deps.Config.NotificationTransport != config.NotificationTransportSES {
		return
	}
	deps.AwsConfig = newAwsConfig(deps.Config.AwsRegion, deps.Config.AwsAccessKey, deps.Config.AwsSecretKey)
}

func (deps *Deps) migrate() {
	if err := db.Migrate(deps.Config.PostgresqlURL, deps.Config.MigrationsPath); err != nil {
		deps.Logger.Error(context.Background(), "Could not apply DB migrations.", dl.Entry("err", err))
		panic(err)
	}
	deps.Logger.Info(context.Background(), "DB migrations applied.", dl.Entry("path", deps.Config.MigrationsPath))
}

func (deps *Deps) initPgxPool() func() {
	pool, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = pool
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		pool.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	if deps.Config.RedisURL == "" {
		deps.Logger.Info(context.Background(), "Locations cache is disabled.")
		return func() {}
	}

	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	if deps.Config.NotificationTransport != config.NotificationTransportRabbitmq {
		return func() {}
	}

	rabbitmqConnection, err := rabbitmq.Dial(
		deps.Config.RabbitmqURL,
		deps.Logger,
		deps.Config.RabbitmqReconnectDelay,
	)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initPasswordHasher() user.PasswordHasher {
	if deps.Config.PasswordHasher == config.PasswordHasherPBKDF2 {
		return passwordhasher.NewPBKDF2(deps.Config.PasswordPepper, deps.Config.PBKDF2Iterations)
	}
	return passwordhasher.NewSHA256()
}

func (deps *Deps) initEmailSender() func() {
	switch deps.Config.NotificationTransport {
	case config.NotificationTransportSES:
		deps.EmailSender = email.NewSESSender(deps.AwsConfig, deps.Config.AwsEmailSender)
	case config.NotificationTransportRabbitmq:
		return deps.initRabbitmqEmailQueue()
	default:
		deps.EmailSender = email.NewLogSender(deps.Logger)
	}
	deps.Logger.Info(
		context.Background(),
		"Email sender is ready.",
		dl.Entry("transport", string(deps.Config.NotificationTransport)),
	)
	return func() {}
}

func (deps *Deps) initRabbitmqEmailQueue() func() {
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

	deps.EmailSender = emailqueue.NewRabbitMQ(deps.Logger, rabbitmqChannel, queue, deps.Now)
	deps.Logger.Info(context.Background(), "Email queue is ready.", dl.Entry("queue", queue))

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down email queue.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Email queue shut down.")
	}
}

func newAwsConfig(region string, accessKey string, secretKey string) aws.Config {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(region),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	return cfg
}
