// Package database centralises sqlx connection helpers.  The driver is
// lib/pq; every tenant in the fleet speaks the Postgres wire protocol,
// including the serverless-Postgres hosts whose connection strings live in
// the master registry.
//
// Public entry points:
//
//	Open(dsn)                    – pings before returning; used for the
//	                               master control-plane pool at boot.
//	OpenLazy(dsn, opts)          – no eager ping; used for tenant handles,
//	                               where connectivity is validated on first
//	                               query or via an explicit health check.
package database

import (
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Options tunes a single pool.  Tenant handles use small values so a large
// fleet does not exhaust file descriptors on the console host.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultOptions suits the master pool: the console is the only client.
var DefaultOptions = Options{
	MaxOpenConns:    15,
	MaxIdleConns:    5,
	ConnMaxLifetime: 30 * time.Minute,
}

// TenantOptions keeps per-tenant resource usage small.
var TenantOptions = Options{
	MaxOpenConns:    5,
	MaxIdleConns:    2,
	ConnMaxLifetime: 30 * time.Minute,
}

// Open returns a *sqlx.DB with DefaultOptions, pinging the database before
// returning so callers can fail fast during bootstrap.
func Open(dsn string) (*sqlx.DB, error) {
	db, err := OpenLazy(dsn, DefaultOptions)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// OpenLazy builds a pool without validating reachability.  sqlx.Open only
// parses the DSN; a broken host surfaces on the first query.
func OpenLazy(dsn string, opts Options) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	return db, nil
}
