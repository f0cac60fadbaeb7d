package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB/Redis
//   connection, secrets, provider credentials)
// - default: Values common across all environments (timeouts, fee knobs,
//   log format)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	SMS     SMSConfig
	Push    PushConfig
	Invoice InvoiceConfig
	Worker  WorkerConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	Secret              string `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenDuration string `envconfig:"JWT_ACCESS_TOKEN_DURATION" default:"24h"`
}

type SMSConfig struct {
	AccountSID string `envconfig:"TWILIO_ACCOUNT_SID" required:"true"`
	AuthToken  string `envconfig:"TWILIO_AUTH_TOKEN" required:"true"`
	FromNumber string `envconfig:"TWILIO_FROM_NUMBER" required:"true"`
	// Upper bound on SMS sends per second across the whole process.
	SendsPerSecond float64 `envconfig:"SMS_SENDS_PER_SECOND" default:"5"`
}

type PushConfig struct {
	CredentialsFile string `envconfig:"FCM_CREDENTIALS_FILE" default:""`
	OffersTopic     string `envconfig:"PUSH_OFFERS_TOPIC" default:"offers"`
}

type InvoiceConfig struct {
	Bucket        string        `envconfig:"INVOICE_BUCKET" required:"true"`
	SignedURLTTL  time.Duration `envconfig:"INVOICE_SIGNED_URL_TTL" default:"168h"`
	CompanyName   string        `envconfig:"INVOICE_COMPANY_NAME" default:"FreshMart Grocery"`
	SupportEmail  string        `envconfig:"INVOICE_SUPPORT_EMAIL" default:"support@freshmart.example"`
}

type WorkerConfig struct {
	PollInterval time.Duration `envconfig:"WORKER_POLL_INTERVAL" default:"2s"`
	Concurrency  int           `envconfig:"WORKER_CONCURRENCY" default:"4"`
	MaxAttempts  int           `envconfig:"WORKER_MAX_ATTEMPTS" default:"5"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Addr: "localhost:16379",
		},
		Log: LogConfig{
			Level:      "error",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:              "test-secret",
			AccessTokenDuration: "1h",
		},
	}
}
