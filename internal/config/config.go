package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string        `env:"PORT" envDefault:"8080"`
	Environment string        `env:"APP_ENV" envDefault:"development"`
	CORSOrigins []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	JWTSecret   string        `env:"JWT_SECRET,required,notEmpty"`
	JWTTTL      time.Duration `env:"JWT_TTL" envDefault:"72h"`

	DB  DBConfig
	Log LogConfig

	TraceExporter string `env:"TRACE_EXPORTER"`
}

type DBConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"devflow"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"100"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`
	SlowThreshold   time.Duration `env:"DB_SLOW_THRESHOLD" envDefault:"1s"`
}

// DSN returns the connection string for gorm's postgres driver.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	File   string `env:"LOG_FILE"`
}

var ErrInvalidConfig = errors.New("invalid config")

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("%w: LOG_FORMAT must be json or text, got %q", ErrInvalidConfig, c.Log.Format)
	}
	switch c.TraceExporter {
	case "", "stdout":
	default:
		return fmt.Errorf("%w: TRACE_EXPORTER must be empty or stdout, got %q", ErrInvalidConfig, c.TraceExporter)
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("%w: JWT_TTL must be positive", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
