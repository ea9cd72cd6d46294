package database

import (
	"database/sql"
	"fmt"
	"time"

	"clinic-intake/config"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresConnection opens the instrumented connection pool and the gorm
// handle layered on top of it. The caller owns both.
func NewPostgresConnection(cfg config.DBConfig, log *logrus.Logger) (*gorm.DB, *sql.DB, error) {
	driver, err := driverName(cfg.Driver)
	if err != nil {
		return nil, nil, err
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode,
	)

	attrs := otelsql.WithAttributes(
		semconv.DBSystemPostgreSQL,
		semconv.DBName(cfg.Name),
	)

	sqlDB, err := otelsql.Open(driver, dsn, attrs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := otelsql.RegisterDBStatsMetrics(sqlDB, attrs); err != nil {
		log.Warnf("Failed to register database stats metrics: %v", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	db, err := newGorm(sqlDB, log)
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.WithField("driver", driver).Info("Successfully connected to PostgreSQL database")

	return db, sqlDB, nil
}

// newGorm layers gorm over an open pool, logging SQL through log.
func newGorm(sqlDB *sql.DB, log *logrus.Logger) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
}

func driverName(name string) (string, error) {
	switch name {
	case "", "pgx":
		return "pgx", nil
	case "postgres", "pq":
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", name)
	}
}
