// internal/vault/vault.go
//
// Vault client wrapper for the console.
//
// Context
// -------
// Registry rows may store `vault:<path>#<key>` references instead of plain
// connection strings.  This wrapper adds per-key caching and background
// token renewal on top of the HashiCorp Vault Go SDK, so the tenant loader
// can resolve references without caring about Vault mechanics.
//
// Public workflow
// ---------------
//  1. cli, err := vault.New(ctx)                   // during boot.
//  2. dsn, err := cli.GetKV(ctx, path, key, ttl)   // from the tenant loader.
//
// Environment expectations: VAULT_ADDR and VAULT_TOKEN, per the SDK.
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	vault "github.com/hashicorp/vault/api"
	"go.uber.org/zap"
)

// Client is safe for concurrent use.  Create once at startup and inject
// it.  Zero value is invalid.
type Client struct {
	api *vault.Client

	cacheMu sync.RWMutex
	cache   map[string]cached // canonical path#key → value + expiry
}

type cached struct {
	val string
	exp time.Time
}

// New constructs a Vault client and starts a background token-renewal
// loop tied to ctx.
func New(ctx context.Context) (*Client, error) {
	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}

	apiCli, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}
	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		apiCli.SetToken(tok)
	}

	c := &Client{
		api:   apiCli,
		cache: make(map[string]cached),
	}
	go c.renewLoop(ctx)
	return c, nil
}

// GetKV fetches a single key from a KV-v2 secret.  If ttl > 0 the result
// is cached for that duration.
func (c *Client) GetKV(ctx context.Context, secretPath, key string, ttl time.Duration) (string, error) {
	if secretPath == "" || key == "" {
		return "", errors.New("secret path and key must be non-empty")
	}

	canonical := secretPath + "#" + key

	if ttl > 0 {
		c.cacheMu.RLock()
		if cv, ok := c.cache[canonical]; ok && time.Now().Before(cv.exp) {
			c.cacheMu.RUnlock()
			return cv.val, nil
		}
		c.cacheMu.RUnlock()
	}

	mount, rel := splitMount(secretPath)
	sec, err := c.api.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return "", fmt.Errorf("vault get %s: %w", secretPath, err)
	}

	raw, ok := sec.Data[key]
	if !ok {
		return "", fmt.Errorf("key %q not found in secret %q", key, secretPath)
	}
	sval, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("value at %s#%s is not a string", secretPath, key)
	}

	if ttl > 0 {
		c.cacheMu.Lock()
		c.cache[canonical] = cached{val: sval, exp: time.Now().Add(ttl)}
		c.cacheMu.Unlock()
	}
	return sval, nil
}

// renewLoop keeps the token alive.  A non-renewable token is probed once
// an hour in case an operator swaps it in place.
func (c *Client) renewLoop(ctx context.Context) {
	for {
		sec, err := c.api.Auth().Token().RenewSelf(0)
		if err != nil {
			zap.S().Warnw("vault token renew failed", "err", err)
		}
		if !sleep(ctx, renewDelay(sec, err)) {
			return
		}
	}
}

// renewDelay decides how long to wait before the next RenewSelf.  A
// secret with no Auth block (some auth methods answer without one) is
// treated like a non-renewable token, never dereferenced.
func renewDelay(sec *vault.Secret, err error) time.Duration {
	switch {
	case err != nil:
		return 30 * time.Second
	case sec == nil || sec.Auth == nil || !sec.Auth.Renewable:
		return time.Hour
	default:
		return time.Duration(sec.Auth.LeaseDuration) * time.Second / 2
	}
}

func splitMount(p string) (mount, rel string) {
	mount, rel, _ = strings.Cut(p, "/")
	return
}

// sleep waits d or until ctx is done; false means shutdown.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
