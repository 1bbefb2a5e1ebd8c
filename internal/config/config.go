package config

import (
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type PasswordHasherKind string

const (
	PasswordHasherSHA256 PasswordHasherKind = "sha256"
	PasswordHasherPBKDF2 PasswordHasherKind = "pbkdf2"
)

type NotificationTransport string

const (
	NotificationTransportSES      NotificationTransport = "ses"
	NotificationTransportRabbitmq NotificationTransport = "rabbitmq"
	NotificationTransportLog      NotificationTransport = "log"
)

type Config struct {
	Port           uint16   `env:"PORT" envDefault:"8080"`
	IsTestMode     bool     `env:"TEST_MODE"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// ShutdownTimeout bounds how long in-flight requests may finish after SIGTERM.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"20s"`

	PostgresqlURL  string `env:"POSTGRESQL_URL,required"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`

	RedisURL          string        `env:"REDIS_URL"`
	LocationsCacheTTL time.Duration `env:"LOCATIONS_CACHE_TTL" envDefault:"5m"`

	PasswordHasher   PasswordHasherKind `env:"PASSWORD_HASHER" envDefault:"sha256"`
	PasswordPepper   string             `env:"PASSWORD_PEPPER"`
	PBKDF2Iterations int                `env:"PBKDF2_ITERATIONS" envDefault:"100000"`

	PasswordResetValidDuration time.Duration `env:"PASSWORD_RESET_VALID_DURATION" envDefault:"2h"`
	FrontendBaseURL            url.URL       `env:"FRONTEND_BASE_URL" envDefault:"https://localhost:44330"`
	ResetPasswordPath          string        `env:"RESET_PASSWORD_PATH" envDefault:"/Register Page/ResetPassword.aspx"`

	NotificationTransport NotificationTransport `env:"NOTIFICATION_TRANSPORT" envDefault:"log"`

	AwsRegion      string `env:"AWS_REGION"`
	AwsAccessKey   string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey   string `env:"AWS_SECRET_KEY"`
	AwsEmailSender string `env:"AWS_EMAIL_SENDER"`

	RabbitmqURL            string        `env:"RABBITMQ_URL"`
	RabbitmqResetLinkQueue string        `env:"RABBITMQ_RESET_LINK_QUEUE" envDefault:"reset_link"`
	RabbitmqReconnectDelay time.Duration `env:"RABBITMQ_RECONNECT_DELAY" envDefault:"3s"`
}

// Load reads the environment, preceded by a .env file in the working directory if there is one.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("could not load .env file: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("could not parse config from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.PasswordHasher {
	case PasswordHasherSHA256:
	case PasswordHasherPBKDF2:
		if c.PBKDF2Iterations < 1 {
			return fmt.Errorf("PBKDF2_ITERATIONS must be positive")
		}
	default:
		return fmt.Errorf("unknown PASSWORD_HASHER %q", c.PasswordHasher)
	}

	switch c.NotificationTransport {
	case NotificationTransportLog:
	case NotificationTransportSES:
		if err := c.validateAws(); err != nil {
			return err
		}
	case NotificationTransportRabbitmq:
		if c.RabbitmqURL == "" {
			return fmt.Errorf("RABBITMQ_URL must be set for the rabbitmq notification transport")
		}
		if c.RabbitmqReconnectDelay <= 0 {
			return fmt.Errorf("RABBITMQ_RECONNECT_DELAY must be positive")
		}
	default:
		return fmt.Errorf("unknown NOTIFICATION_TRANSPORT %q", c.NotificationTransport)
	}

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.PasswordResetValidDuration <= 0 {
		return fmt.Errorf("PASSWORD_RESET_VALID_DURATION must be positive")
	}
	if c.FrontendBaseURL.Scheme == "" || c.FrontendBaseURL.Host == "" {
		return fmt.Errorf("FRONTEND_BASE_URL must be an absolute URL")
	}
	return nil
}

func (c *Config) validateAws() error {
	missing := []string{}
	for name, value := range map[string]string{
		"AWS_REGION":       c.AwsRegion,
		"AWS_ACCESS_KEY":   c.AwsAccessKey,
		"AWS_SECRET_KEY":   c.AwsSecretKey,
		"AWS_EMAIL_SENDER": c.AwsEmailSender,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%s must be set for the ses notification transport", strings.Join(missing, ", "))
	}
	return nil
}

// MailerConfig is what cmd/mailer needs to deliver queued emails through SES.
type MailerConfig struct {
	RabbitmqURL            string `env:"RABBITMQ_URL,required"`
	RabbitmqResetLinkQueue string        `env:"RABBITMQ_RESET_LINK_QUEUE" envDefault:"reset_link"`
	RabbitmqReconnectDelay time.Duration `env:"RABBITMQ_RECONNECT_DELAY" envDefault:"3s"`
	AwsRegion              string        `env:"AWS_REGION,required"`
	AwsAccessKey           string        `env:"AWS_ACCESS_KEY,required"`
	AwsSecretKey           string        `env:"AWS_SECRET_KEY,required"`
	AwsEmailSender         string        `env:"AWS_EMAIL_SENDER,required"`
	IsTestMode             bool          `env:"TEST_MODE"`
}

func LoadMailer() (*MailerConfig, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("could not load .env file: %w", err)
		}
	}
	cfg := &MailerConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("could not parse mailer config from environment: %w", err)
	}
	if cfg.RabbitmqReconnectDelay <= 0 {
		return nil, fmt.Errorf("RABBITMQ_RECONNECT_DELAY must be positive")
	}
	return cfg, nil
}
