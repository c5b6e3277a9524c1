package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
		RequestTimeoutSeconds int `envconfig:"REQUEST_TIMEOUT_SECONDS" default:"30"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"fixmycondo"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
				PoolSize int    `envconfig:"POOL_SIZE" default:"10"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry               int          `envconfig:"MAX_RETRY"                 default:"3"`
			RetryWaitTime          int          `envconfig:"RETRY_WAIT_TIME"           default:"2"`
			MaxOpenConns           int          `envconfig:"MAX_OPEN_CONNS"            default:"10"`
			MaxIdleConns           int          `envconfig:"MAX_IDLE_CONNS"            default:"10"`
			ConnMaxLifetimeMinutes int          `envconfig:"CONN_MAX_LIFETIME_MINUTES" default:"30"`
			MigrationTable         string       `envconfig:"MIGRATION_TABLE"           default:"schema_migrations"`
			MigrationPath          string       `envconfig:"MIGRATION_PATH"            default:"file://migrations/postgres"`
			AutoMigrate            bool         `envconfig:"AUTO_MIGRATE"`
			Prefix                 string       `envconfig:"PREFIX"`
			Read                   PostgresNode `envconfig:"READ"`
			Write                  PostgresNode `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	External struct {
		Otel struct {
			Endpoint    string  `envconfig:"ENDPOINT"`
			SampleRatio float64 `envconfig:"SAMPLE_RATIO" default:"1"`
		} `envconfig:"OTEL"`
	} `envconfig:"EXTERNAL"`

	Kafka struct {
		Enable        bool     `envconfig:"ENABLE"`
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			Complaint string `envconfig:"COMPLAINT" default:"complaint.events"`
			Booking   string `envconfig:"BOOKING"   default:"booking.events"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`

	Metrics struct {
		Namespace  string `envconfig:"NAMESPACE"   default:"fixmycondo"`
		WorkerPort string `envconfig:"WORKER_PORT" default:"9091"`
	} `envconfig:"METRICS"`

	SLA struct {
		CriticalHours        int    `envconfig:"CRITICAL_HOURS"         default:"4"`
		HighHours            int    `envconfig:"HIGH_HOURS"             default:"24"`
		MediumHours          int    `envconfig:"MEDIUM_HOURS"           default:"48"`
		LowHours             int    `envconfig:"LOW_HOURS"              default:"72"`
		ReopenPolicy         string `envconfig:"REOPEN_POLICY"          default:"extend"`
		SweepIntervalSeconds int    `envconfig:"SWEEP_INTERVAL_SECONDS" default:"300"`
		SweepBatchSize       int    `envconfig:"SWEEP_BATCH_SIZE"       default:"100"`
	} `envconfig:"SLA"`

	Booking struct {
		RaceRetries int `envconfig:"RACE_RETRIES" default:"1"`
	} `envconfig:"BOOKING"`
}

// PostgresNode addresses one database server. An empty read node falls back to the write node.
type PostgresNode struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Warn().Err(err).Msg("Configuration loaded without .env file")
		}
	}

	return &conf
}
