package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emilythestrangee/devflow/backend/internal/config"
	"github.com/emilythestrangee/devflow/backend/internal/models"
)

// Service represents a service that interacts with a database.
type Service interface {
	// Health pings the database and reports connection pool usage.
	Health(ctx context.Context) HealthReport

	// Close terminates the database connection.
	// It returns an error if the connection cannot be closed.
	Close() error
	GetDB() *gorm.DB
}

type service struct {
	db   *gorm.DB
	name string
	log  *slog.Logger
}

// New opens the database described by cfg, runs migrations and configures the
// connection pool. Call it once at startup and pass the result to callers.
func New(cfg config.DBConfig, log *slog.Logger) (Service, error) {
	db, err := Open(cfg.DSN(), cfg.SlowThreshold, log)
	if err != nil {
		return nil, err
	}

	log.Info("database connected", "host", cfg.Host, "name", cfg.Name)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database migrations completed")

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return &service{db: db, name: cfg.Name, log: log}, nil
}

// Open connects to dsn without migrating.
func Open(dsn string, slow time.Duration, log *slog.Logger) (*gorm.DB, error) {
	gormLogger := logger.New(
		slog.NewLogLogger(log.Handler(), slog.LevelDebug),
		logger.Config{
			SlowThreshold:             slow,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Question{}, "Tags", &models.TagQuestion{}); err != nil {
		return fmt.Errorf("setup tag join table: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.Answer{},
		&models.Tag{},
		&models.TagQuestion{},
		&models.Vote{},
		&models.Interaction{},
		&models.Collection{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

func (s *service) GetDB() *gorm.DB {
	return s.db
}

// HealthReport is the database part of GET /health.
type HealthReport struct {
	Status          string `json:"status"`
	Error           string `json:"error,omitempty"`
	OpenConnections int    `json:"open_connections"`
	InUse           int    `json:"in_use"`
	Idle            int    `json:"idle"`
	WaitCount       int64  `json:"wait_count"`
	LatencyMS       int64  `json:"latency_ms"`
}

func (r HealthReport) Up() bool {
	return r.Status == StatusUp
}

const (
	StatusUp   = "up"
	StatusDown = "down"

	healthTimeout = 3 * time.Second
)

type pinger interface {
	PingContext(ctx context.Context) error
	Stats() sql.DBStats
}

// Health pings the database and reports pool usage.
func (s *service) Health(ctx context.Context) HealthReport {
	sqlDB, err := s.db.DB()
	if err != nil {
		return HealthReport{Status: StatusDown, Error: err.Error()}
	}
	return checkHealth(ctx, sqlDB)
}

func checkHealth(ctx context.Context, db pinger) HealthReport {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	start := time.Now()
	err := db.PingContext(ctx)
	report := HealthReport{Status: StatusUp, LatencyMS: time.Since(start).Milliseconds()}
	if err != nil {
		report.Status = StatusDown
		report.Error = err.Error()
		return report
	}

	stats := db.Stats()
	report.OpenConnections = stats.OpenConnections
	report.InUse = stats.InUse
	report.Idle = stats.Idle
	report.WaitCount = stats.WaitCount
	return report
}

// Close closes the database connection.
func (s *service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	s.log.Info("disconnected from database", "name", s.name)
	return sqlDB.Close()
}

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err comes from a unique constraint.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
