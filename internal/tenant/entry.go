// internal/tenant/entry.go
//
// Tenant cache entry and aggregate.
//
// Context
// -------
// A live Tenant aggregates what the API handlers need to serve one site's
// admin screens: its registry username, the resolved connection string,
// and the cached database handle.  The cache stores a pointer to Tenant
// inside `entry`, along with a `lastSeen` UnixNano timestamp surfaced by
// the master dashboard's cache snapshot.
//
// Notes
// -----
//   - Handlers must treat Tenant as immutable after initial load.
//   - The DB handle is owned by the conncache, never closed here; two
//     tenants whose registry rows share a connection string share one
//     handle.
package tenant

import (
	"github.com/jmoiron/sqlx"
)

//
// Cache entry
//

type entry struct {
	tenant   *Tenant
	lastSeen int64 // UnixNano
}

//
// Tenant aggregate
//

// Tenant groups the per-site runtime assets needed by request handlers.
type Tenant struct {
	Username         string
	ConnectionString string
	DB               *sqlx.DB
}
