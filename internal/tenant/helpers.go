// internal/tenant/helpers.go
//
// Connection-string secret resolution shared by loader and tests.
//
// Context
// -------
// Registry rows normally hold a plain Postgres DSN.  Operators who keep
// credentials out of the master database store a reference of the form
//
//	vault:<secret-path>#<key>
//
// which is resolved through the Vault client at load time.  The resolved
// DSN is what keys the connection cache, so two tenants whose references
// resolve to the same DSN share one handle.
//
// Notes
// -----
// No logging here; the caller decides what to log.
package tenant

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const vaultPrefix = "vault:"

// secretTTL caches resolved credentials briefly so a cold cache with many
// tenants does not hammer Vault.
const secretTTL = 5 * time.Minute

// SecretResolver is satisfied by vault.Client.  Tests inject fakes.
type SecretResolver interface {
	GetKV(ctx context.Context, secretPath, key string, ttl time.Duration) (string, error)
}

// resolveConnString expands a vault reference into a plain DSN.  Plain
// strings pass through untouched.
func resolveConnString(ctx context.Context, secrets SecretResolver, connStr string) (string, error) {
	if !strings.HasPrefix(connStr, vaultPrefix) {
		return connStr, nil
	}
	if secrets == nil {
		return "", fmt.Errorf("connection string %q needs a vault client, none configured", connStr)
	}

	ref := strings.TrimPrefix(connStr, vaultPrefix)
	path, key, ok := strings.Cut(ref, "#")
	if !ok || path == "" || key == "" {
		return "", fmt.Errorf("malformed vault reference %q", connStr)
	}

	dsn, err := secrets.GetKV(ctx, path, key, secretTTL)
	if err != nil {
		return "", fmt.Errorf("resolve vault reference %q: %w", path, err)
	}
	return dsn, nil
}
