// backend-go/internal/repository/mysql/registry.go
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/storedispatch/backend-go/internal/config"
)

// Registry resolves a logical database target to its pool. The cloud and
// local pools open at startup; dedicated per-store pools open lazily from the
// address registered in tblstores and stay cached until Shutdown.
type Registry struct {
	cloud *DB
	local *DB

	mu     sync.Mutex
	stores map[string]*DB

	localDBName string
	stmtTimeout time.Duration
}

// NewRegistry opens the cloud and local pools. The caller owns the registry
// and must call Shutdown on exit.
func NewRegistry(cloudCfg, localCfg config.DatabaseConfig, stmtTimeout time.Duration) (*Registry, error) {
	cloud, err := NewDB(cloudCfg, stmtTimeout)
	if err != nil {
		return nil, fmt.Errorf("cloud pool: %w", err)
	}

	local, err := NewDB(localCfg, stmtTimeout)
	if err != nil {
		cloud.Close()
		return nil, fmt.Errorf("local pool: %w", err)
	}

	return &Registry{
		cloud:       cloud,
		local:       local,
		stores:      make(map[string]*DB),
		localDBName: localCfg.DBName,
		stmtTimeout: stmtTimeout,
	}, nil
}

// Cloud returns the warehouse-wide authoritative pool.
func (r *Registry) Cloud() *DB {
	return r.cloud
}

// Local returns the site-local pool.
func (r *Registry) Local() *DB {
	return r.local
}

// Store returns the dedicated pool for a named store, opening it from the
// store's registered HostIP/PortNo on first use. The store schema mirrors
// the local one, so the local database name is reused.
func (r *Registry) Store(ctx context.Context, storeName string) (*DB, error) {
	if storeName == "" {
		return nil, errors.New("store name is empty")
	}

	r.mu.Lock()
	if db, ok := r.stores[storeName]; ok {
		r.mu.Unlock()
		return db, nil
	}
	r.mu.Unlock()

	var row struct {
		HostIP   string `db:"HostIP"`
		PortNo   string `db:"PortNo"`
		UserName string `db:"userName"`
		Password string `db:"Password"`
	}
	query := `SELECT HostIP, PortNo, userName, Password FROM tblstores WHERE Storename = ? LIMIT 1`
	if err := r.local.GetContext(ctx, &row, query, storeName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("store %q is not registered", storeName)
		}
		return nil, fmt.Errorf("could not resolve store %q: %w", storeName, err)
	}

	db, err := NewDB(config.DatabaseConfig{
		Host:     row.HostIP,
		Port:     row.PortNo,
		User:     row.UserName,
		Password: row.Password,
		DBName:   r.localDBName,
	}, r.stmtTimeout)
	if err != nil {
		return nil, fmt.Errorf("store pool %q: %w", storeName, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.stores[storeName]; ok {
		// Lost the race; keep the first pool.
		db.Close()
		return existing, nil
	}
	r.stores[storeName] = db
	return db, nil
}

// Shutdown closes every pool the registry opened.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, db := range r.stores {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Str("store", name).Msg("closing store pool")
		}
		delete(r.stores, name)
	}
	if err := r.local.Close(); err != nil {
		log.Error().Err(err).Msg("closing local pool")
	}
	if err := r.cloud.Close(); err != nil {
		log.Error().Err(err).Msg("closing cloud pool")
	}
}
