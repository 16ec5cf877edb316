package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/water-station-map/internal/config"
	"go.uber.org/zap"
)

// Name - имя технологии хранилища
const Name = "postgres"

const pingTimeout = 5 * time.Second

// DB - пул соединений, общий для хранилищ станций и сообщений
type DB struct {
	*sqlx.DB
	logger *zap.Logger
}

// New настраивает пул. Open не ходит в сеть: соединение проверяется в Connect хранилища.
func New(cfg *config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	if cfg.Host == "" || cfg.DBName == "" {
		return nil, errors.New("postgres: DB_HOST and DB_NAME are required")
	}

	db, err := sqlx.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	logger.Info("PostgreSQL pool configured",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.DBName),
		zap.Int("max_conns", cfg.MaxConns),
	)

	return &DB{DB: db, logger: logger}, nil
}

func (db *DB) Close() error {
	stats := db.Stats()
	db.logger.Info("Closing PostgreSQL connection",
		zap.Int("open_connections", stats.OpenConnections),
		zap.Int64("wait_count", stats.WaitCount),
	)
	return db.DB.Close()
}

func (db *DB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping: %w", err)
	}
	return nil
}

// NewDBForTest оборачивает готовое подключение (sqlmock или тестовая база)
func NewDBForTest(sqlxDB *sqlx.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{
		DB:     sqlxDB,
		logger: logger,
	}
}
