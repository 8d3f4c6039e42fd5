// internal/conncache/conncache.go
//
// Identity cache of database handles keyed by connection string.
//
// Context
// -------
// Several pieces of one dashboard page touch the same tenant database, and
// different tenants may even share a physical host.  The cache guarantees
// that every call with the same connection string receives the *same*
// *sqlx.DB, so pool-level resources (sockets, prepared statements) are
// reused.  Keys compare by exact string equality; no DSN normalisation is
// attempted.
//
// Handles live for the lifetime of the process.  There is no TTL and no
// eviction pass: the number of distinct tenants is small and long-lived,
// so unbounded growth is an accepted scaling limit rather than a leak.  A
// broken handle is only noticed when a query fails; `Invalidate` lets an
// operator or health check drop such an entry explicitly.
//
// Notes
// -----
//   - Construct one Cache and inject it; tests build isolated instances so
//     cache assertions never leak across tests.
//   - Opening is deduplicated with singleflight, so a burst of first hits
//     for one string builds a single pool.
package conncache

import (
	"context"
	"errors"
	"sync"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/singleflight"

	"github.com/siteforge/console/internal/database"
	"github.com/siteforge/console/internal/metrics"
)

// ErrInvalidConnString is returned for an empty or unparseable connection
// string.  Non-retryable.
var ErrInvalidConnString = errors.New("invalid connection string")

// Opener builds a handle for one connection string.  The default opener is
// database.OpenLazy with tenant pool sizes; tests inject sqlmock-backed
// fakes.
type Opener func(connStr string) (*sqlx.DB, error)

// Cache maps connection string → live handle.
type Cache struct {
	open Opener
	sfg  singleflight.Group

	mu      sync.RWMutex
	handles map[string]*sqlx.DB
}

// New constructs a Cache.  A nil opener selects the lib/pq default.
func New(open Opener) *Cache {
	if open == nil {
		open = func(connStr string) (*sqlx.DB, error) {
			return database.OpenLazy(connStr, database.TenantOptions)
		}
	}
	return &Cache{
		open:    open,
		handles: make(map[string]*sqlx.DB, 8),
	}
}

// Get returns the handle for connStr, opening it on first use.  Two calls
// with the same string always yield the same handle instance.
func (c *Cache) Get(connStr string) (*sqlx.DB, error) {
	if connStr == "" {
		return nil, ErrInvalidConnString
	}

	c.mu.RLock()
	db, ok := c.handles[connStr]
	c.mu.RUnlock()
	if ok {
		return db, nil
	}

	v, err, _ := c.sfg.Do(connStr, func() (interface{}, error) {
		// Double-check after the singleflight barrier.
		c.mu.RLock()
		db, ok := c.handles[connStr]
		c.mu.RUnlock()
		if ok {
			return db, nil
		}

		db, err := c.open(connStr)
		if err != nil {
			return nil, errors.Join(ErrInvalidConnString, err)
		}

		c.mu.Lock()
		c.handles[connStr] = db
		c.mu.Unlock()
		metrics.CachedHandles.Inc()
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sqlx.DB), nil
}

// TestConnection runs the health-check probe against connStr.  True means
// the database answered `SELECT 1 AS connected` with 1.
func (c *Cache) TestConnection(ctx context.Context, connStr string) (bool, error) {
	db, err := c.Get(connStr)
	if err != nil {
		return false, err
	}

	var connected int
	if err := db.GetContext(ctx, &connected, `SELECT 1 AS connected`); err != nil {
		return false, err
	}
	return connected == 1, nil
}

// Invalidate closes and drops the handle for connStr, if cached.  The next
// Get re-opens.  Called explicitly after a connection-level failure; never
// triggered automatically.
func (c *Cache) Invalidate(connStr string) {
	c.mu.Lock()
	db, ok := c.handles[connStr]
	if ok {
		delete(c.handles, connStr)
	}
	c.mu.Unlock()

	if ok {
		_ = db.Close()
		metrics.CachedHandles.Dec()
	}
}

// Len reports the number of cached handles.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.handles)
}
