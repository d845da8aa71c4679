// backend-go/internal/repository/mysql/db.go
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/storedispatch/backend-go/internal/config"
)

// DB wraps one logical database's connection pool. The semaphore caps
// concurrent operations at the pool's connection limit so waiters queue
// instead of piling onto the driver.
type DB struct {
	*sqlx.DB
	sem         *semaphore.Weighted
	stmtTimeout time.Duration
}

const poolLimit = 10

// NewDB opens a connection pool for one database target.
func NewDB(cfg config.DatabaseConfig, stmtTimeout time.Duration) (*DB, error) {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	mc.DBName = cfg.DBName
	mc.ParseTime = true

	db, err := sqlx.Connect("mysql", mc.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("could not connect to %s: %w", cfg.DBName, err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(poolLimit)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &DB{
		DB:          db,
		sem:         semaphore.NewWeighted(poolLimit),
		stmtTimeout: stmtTimeout,
	}, nil
}

// StmtCtx derives a context with the per-statement timeout applied.
func (db *DB) StmtCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if db.stmtTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, db.stmtTimeout)
}

// WithTx executes a function within a transaction
func (db *DB) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	// Acquire semaphore
	if err := db.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("could not acquire semaphore: %w", err)
	}
	defer db.sem.Release(1)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	if err := fn(tx.Tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("could not rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}
