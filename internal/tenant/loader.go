package tenant

import (
	"context"

	"github.com/siteforge/console/internal/registry"
)

// load turns username → *Tenant.  Steps:
//
//  1. Fetch the connection string from the master registry.
//  2. Resolve any vault reference to the plain DSN.
//  3. Fetch or open the handle through the connection cache.
func (c *Cache) load(ctx context.Context, username string) (*Tenant, error) {
	// 1. registry row
	connStr, err := registry.ByUsername(ctx, c.masterDB, username)
	if err != nil {
		return nil, err
	}

	// 2. secret resolution
	connStr, err = resolveConnString(ctx, c.secrets, connStr)
	if err != nil {
		return nil, err
	}

	// 3. cached handle
	db, err := c.conns.Get(connStr)
	if err != nil {
		return nil, err
	}

	return &Tenant{
		Username:         username,
		ConnectionString: connStr,
		DB:               db,
	}, nil
}
