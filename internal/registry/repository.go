// internal/registry/repository.go
//
// Queries against the master `admins` table.
//
// Context
// -------
// The registry is the control plane: one row per tenant, read-only from
// the resolver's perspective, mutated only by the master-operator CRUD
// endpoints.  `ByUsername` is the hot path; it backs every tenant-cache
// miss.  Username is enforced unique at the schema level, so LIMIT 1 is a
// belt-and-braces guard, not a selection rule.
package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when no active row matches a username.  Callers
// must treat it as non-retryable: it indicates misconfiguration, not a
// transient failure.
var ErrNotFound = errors.New("tenant not found or inactive")

// ByUsername fetches the connection string for one active tenant.
func ByUsername(ctx context.Context, db *sqlx.DB, username string) (string, error) {
	const q = `
        SELECT connection_string
        FROM   admins
        WHERE  username = $1
          AND  status   = 'active'
        LIMIT  1`

	var connStr string
	if err := db.GetContext(ctx, &connStr, q, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("registry lookup %q: %w", username, err)
	}
	return connStr, nil
}

// All returns every tenant row regardless of status.  The master admins
// screen lists through this so an operator can find an inactive row and
// flip it back to active.
func All(ctx context.Context, db *sqlx.DB) ([]Record, error) {
	const q = `
        SELECT id, username, connection_string, status, created_at, updated_at
        FROM   admins
        ORDER  BY username`

	var rows []Record
	if err := db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("registry list: %w", err)
	}
	return rows, nil
}

// AllActive returns only the resolvable tenant rows.  Used by the
// boot-time sanity log, not by the request path.
func AllActive(ctx context.Context, db *sqlx.DB) ([]Record, error) {
	const q = `
        SELECT id, username, connection_string, status, created_at, updated_at
        FROM   admins
        WHERE  status = 'active'
        ORDER  BY username`

	var rows []Record
	if err := db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("registry list: %w", err)
	}
	return rows, nil
}

// Insert creates a tenant row.  The new id is returned so the master UI
// can select the row it just created.
func Insert(ctx context.Context, db *sqlx.DB, username, connStr, status string) (int64, error) {
	const q = `
        INSERT INTO admins (username, connection_string, status)
        VALUES ($1, $2, $3)
        RETURNING id`

	var id int64
	if err := db.GetContext(ctx, &id, q, username, connStr, status); err != nil {
		return 0, fmt.Errorf("registry insert %q: %w", username, err)
	}
	return id, nil
}

// UpdateStatus flips a tenant between active and inactive.
func UpdateStatus(ctx context.Context, db *sqlx.DB, id int64, status string) error {
	const q = `
        UPDATE admins
        SET    status = $1, updated_at = CURRENT_TIMESTAMP
        WHERE  id = $2`

	if _, err := db.ExecContext(ctx, q, status, id); err != nil {
		return fmt.Errorf("registry update status: %w", err)
	}
	return nil
}

// Delete removes a tenant row.  The tenant database itself is untouched.
func Delete(ctx context.Context, db *sqlx.DB, id int64) error {
	const q = `DELETE FROM admins WHERE id = $1`
	if _, err := db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("registry delete: %w", err)
	}
	return nil
}
