package registry

import "time"

// Status values for an admins row.  Only active tenants resolve.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Record mirrors one row in the master `admins` table.  Each row binds a
// tenant username (the URL path segment an admin signs in under) to the
// connection string of that tenant's isolated Postgres database.
//
// ConnectionString is opaque to this package.  It may be a plain DSN or a
// `vault:<path>#<key>` reference resolved by the tenant loader before the
// handle is opened.
type Record struct {
	ID               int64     `db:"id"`
	Username         string    `db:"username"`
	ConnectionString string    `db:"connection_string"`
	Status           string    `db:"status"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// Active reports whether the row is resolvable.
func (r *Record) Active() bool { return r.Status == StatusActive }
