// internal/tenant/cache.go
//
// Lazy tenant cache.
//
// Context
// -------
// The first request for a tenant username resolves its connection string
// from the master registry, opens (or reuses) the handle through the
// connection cache, and stores the Tenant in a sync.Map.  Later requests
// for the same username hit the map.  Loads are deduplicated with
// singleflight so a burst of first hits issues one registry query.
//
// Entries are retained for the lifetime of the process.  There is no idle
// TTL and no LRU pass: the fleet is small and long-lived, and connection
// handles are stateless request issuers, so retention costs one map slot
// and one pool per distinct connection string.
package tenant

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/singleflight"

	"github.com/siteforge/console/internal/conncache"
	"github.com/siteforge/console/internal/metrics"
	"github.com/siteforge/console/internal/registry"
)

// ErrNotFound is returned when a username has no active registry row.
var ErrNotFound = registry.ErrNotFound

// Cache lazily resolves tenants and stores them in a sync.Map.
type Cache struct {
	masterDB *sqlx.DB
	conns    *conncache.Cache
	secrets  SecretResolver
	sfg      singleflight.Group
	m        sync.Map
}

// New constructs a Cache.  secrets may be nil when no registry row uses a
// vault reference.
func New(master *sqlx.DB, conns *conncache.Cache, secrets SecretResolver) *Cache {
	return &Cache{
		masterDB: master,
		conns:    conns,
		secrets:  secrets,
	}
}

// Get returns the Tenant for username, loading it on demand.
func (c *Cache) Get(ctx context.Context, username string) (*Tenant, error) {
	if v, ok := c.m.Load(username); ok {
		ent := v.(*entry)
		atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
		return ent.tenant, nil
	}

	v, err, _ := c.sfg.Do(username, func() (interface{}, error) {
		// Double-check after singleflight barrier.
		if v, ok := c.m.Load(username); ok {
			ent := v.(*entry)
			atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
			return ent.tenant, nil
		}
		// The load is shared by every deduped waiter, so it must not die
		// with whichever request happened to arrive first.
		ten, err := c.load(context.WithoutCancel(ctx), username)
		if err != nil {
			metrics.TenantResolveErrorsTotal.Inc()
			return nil, err
		}
		ent := &entry{
			tenant:   ten,
			lastSeen: time.Now().UnixNano(),
		}
		c.m.Store(username, ent)
		metrics.TenantResolveTotal.Inc()
		return ten, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Tenant), nil
}

// Conns exposes the underlying connection cache for health checks.
func (c *Cache) Conns() *conncache.Cache { return c.conns }

// SnapshotEntry is one row of the master dashboard's cache view.
type SnapshotEntry struct {
	Username string    `json:"username"`
	LastSeen time.Time `json:"last_seen"`
}

// Snapshot lists cached tenants with their last access time.
func (c *Cache) Snapshot() []SnapshotEntry {
	var out []SnapshotEntry
	c.m.Range(func(key, value any) bool {
		ent := value.(*entry)
		out = append(out, SnapshotEntry{
			Username: key.(string),
			LastSeen: time.Unix(0, atomic.LoadInt64(&ent.lastSeen)),
		})
		return true
	})
	return out
}
