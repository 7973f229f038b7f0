package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server      ServerConfig
	DB          DBConfig
	CORS        CORSConfig
	Log         LogConfig
	Reservation ReservationConfig
	Sweeper     SweeperConfig
	Tracing     TracingConfig
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
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,X-Request-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type ReservationConfig struct {
	// Checkout window applied when the caller does not pass one.
	DefaultTTL   time.Duration `envconfig:"RESERVATION_DEFAULT_TTL" default:"15m"`
	OpTimeout    time.Duration `envconfig:"RESERVATION_OP_TIMEOUT" default:"5s"`
	TxMaxRetries int           `envconfig:"RESERVATION_TX_MAX_RETRIES" default:"3"`
}

type SweeperConfig struct {
	// Zero disables the in-process sweeper; an external scheduler is then expected
	// to call the cleanup endpoint or the sweep subcommand.
	Interval  time.Duration `envconfig:"SWEEPER_INTERVAL" default:"0s"`
	BatchSize int32         `envconfig:"SWEEPER_BATCH_SIZE" default:"500"`
}

type TracingConfig struct {
	// Exporter is one of none, stdout or jaeger. With none, spans are still
	// sampled and processed in-process but not shipped anywhere.
	Exporter       string  `envconfig:"TRACING_EXPORTER" default:"none"`
	ServiceName    string  `envconfig:"TRACING_SERVICE_NAME" default:"inventory-reservation"`
	JaegerEndpoint string  `envconfig:"TRACING_JAEGER_ENDPOINT" default:"http://localhost:14268/api/traces"`
	SampleRatio    float64 `envconfig:"TRACING_SAMPLE_RATIO" default:"1"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
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
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 40,
		},
		CORS: CORSConfig{
			AllowOrigins:  []string{"http://localhost:3000"},
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
			ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
			MaxAge:        12 * time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		Reservation: ReservationConfig{
			DefaultTTL:   15 * time.Minute,
			OpTimeout:    10 * time.Second,
			TxMaxRetries: 5,
		},
		Sweeper: SweeperConfig{
			Interval:  0,
			BatchSize: 100,
		},
		Tracing: TracingConfig{
			Exporter:    "none",
			ServiceName: "inventory-reservation-test",
			SampleRatio: 1,
		},
	}
}
