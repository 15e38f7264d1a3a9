// Package gormstore implements the chat registry and message ledger with GORM
// over SQLite or PostgreSQL.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fenggwsx/slashdm/internal/config"
	"github.com/fenggwsx/slashdm/internal/storage"
)

// Store is a GORM-backed implementation of storage.Store.
type Store struct {
	db *gorm.DB
}

var _ storage.Store = (*Store)(nil)

// Open connects to the configured database.
func Open(cfg config.DatabaseConfig, log zerolog.Logger) (*Store, error) {
	var dialector gorm.Dialector
	driver := strings.ToLower(cfg.Driver)
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case config.DriverSQLite, "":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(log),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if driver == config.DriverPostgres {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	} else {
		// SQLite allows a single writer; one connection also keeps :memory: databases alive.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

// Migrate applies schema updates, including the unordered-pair unique index.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&chatModel{}, &messageModel{})
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", storage.ErrUnavailable, op, err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

type gormLogWriter struct {
	log zerolog.Logger
}

func (w gormLogWriter) Printf(format string, args ...interface{}) {
	w.log.Warn().Msgf(format, args...)
}

func newGormLogger(log zerolog.Logger) logger.Interface {
	return logger.New(gormLogWriter{log: log.With().Str("component", "gorm").Logger()}, logger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
