// internal/registry/fleet.go
//
// Master-side fleet tables: servers, site types, and sites.
//
// Context
// -------
// Beyond the `admins` registry, the master operator tracks which physical
// server each tenant database lives on and what kind of site each tenant
// runs.  These are plain CRUD tables on the master database; nothing on
// the tenant request path reads them.
package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Server is one database host the fleet provisions tenants onto.
type Server struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Host      string    `db:"host" json:"host"`
	Region    string    `db:"region" json:"region"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SiteType is a lookup row classifying sites (blog, review site, shop).
type SiteType struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Site is one managed site: the marketing-level record behind a tenant.
type Site struct {
	ID         int64     `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Domain     string    `db:"domain" json:"domain"`
	SiteTypeID *int64    `db:"site_type_id" json:"site_type_id"`
	ServerID   *int64    `db:"server_id" json:"server_id"`
	AdminID    *int64    `db:"admin_id" json:"admin_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// SitePayload is the create/update body for sites.
type SitePayload struct {
	Name       string `json:"name" validate:"required"`
	Domain     string `json:"domain" validate:"required,fqdn"`
	SiteTypeID *int64 `json:"site_type_id"`
	ServerID   *int64 `json:"server_id"`
	AdminID    *int64 `json:"admin_id"`
}

// ListServers returns every database host.
func ListServers(ctx context.Context, db *sqlx.DB) ([]Server, error) {
	const q = `
        SELECT id, name, host, region, created_at
        FROM   servers
        ORDER BY name`

	var rows []Server
	if err := db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("list servers: %w", err)
	}
	return rows, nil
}

// ListSiteTypes returns the classification lookup.
func ListSiteTypes(ctx context.Context, db *sqlx.DB) ([]SiteType, error) {
	const q = `
        SELECT id, name
        FROM   site_types
        ORDER BY name`

	var rows []SiteType
	if err := db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("list site types: %w", err)
	}
	return rows, nil
}

// ListSites returns every managed site.
func ListSites(ctx context.Context, db *sqlx.DB) ([]Site, error) {
	const q = `
        SELECT id, name, domain, site_type_id, server_id, admin_id,
               created_at, updated_at
        FROM   sites
        ORDER BY name`

	var rows []Site
	if err := db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	return rows, nil
}

// CreateSite inserts one site and returns its id.
func CreateSite(ctx context.Context, db *sqlx.DB, p SitePayload) (int64, error) {
	const q = `
        INSERT INTO sites (name, domain, site_type_id, server_id, admin_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	var id int64
	if err := db.GetContext(ctx, &id, q,
		p.Name, p.Domain, p.SiteTypeID, p.ServerID, p.AdminID); err != nil {
		return 0, fmt.Errorf("create site: %w", err)
	}
	return id, nil
}

// UpdateSite rewrites one site row.
func UpdateSite(ctx context.Context, db *sqlx.DB, id int64, p SitePayload) error {
	const q = `
        UPDATE sites
        SET    name = $1, domain = $2, site_type_id = $3, server_id = $4,
               admin_id = $5, updated_at = CURRENT_TIMESTAMP
        WHERE  id = $6`

	if _, err := db.ExecContext(ctx, q,
		p.Name, p.Domain, p.SiteTypeID, p.ServerID, p.AdminID, id); err != nil {
		return fmt.Errorf("update site %d: %w", id, err)
	}
	return nil
}

// DeleteSite removes one site row.
func DeleteSite(ctx context.Context, db *sqlx.DB, id int64) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM sites WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete site %d: %w", id, err)
	}
	return nil
}
