// cmd/console/main.go
//
// Admin console – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (.env fallback for dev).
//
//  2. Start daily rotating logger (tees to console in a TTY).
//
//  3. Load layered config (yaml + CONSOLE_ env overrides).
//
//  4. Open the master control-plane DB and log the active-tenant count.
//
//  5. Build the connection cache and tenant cache (lazy resolution on
//     first request per tenant username).
//
//  6. Optionally open the GeoLite2 DB and the Vault client.
//
//  7. Serve the chi route table: /master CRUD, /{tenant} CRUD, /metrics.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/siteforge/console/internal/api"
	"github.com/siteforge/console/internal/config"
	"github.com/siteforge/console/internal/conncache"
	"github.com/siteforge/console/internal/database"
	"github.com/siteforge/console/internal/logger"
	"github.com/siteforge/console/internal/media"
	"github.com/siteforge/console/internal/registry"
	"github.com/siteforge/console/internal/requestinfo"
	"github.com/siteforge/console/internal/server"
	"github.com/siteforge/console/internal/tenant"
	"github.com/siteforge/console/internal/textgen"
	"github.com/siteforge/console/internal/vault"
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { _ = godotenv.Load() }

func main() {
	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logOut.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//
	// ── 1.  Master DB connect ──────────────────────────────────────────
	//
	masterDB, err := database.Open(cfg.Database.MasterDSN)
	if err != nil {
		logOut.Fatalf("connect master DB: %v", err)
	}
	defer masterDB.Close()
	logOut.Infow("master DB online")

	// Log the active-tenant count as an early sanity check.
	if rows, err := registry.AllActive(ctx, masterDB); err != nil {
		logOut.Warnw("registry sanity check failed", "err", err)
	} else {
		logOut.Infow("registry loaded", "active_tenants", len(rows))
	}

	//
	// ── 2.  Vault (optional) ───────────────────────────────────────────
	//
	var secrets tenant.SecretResolver
	if cfg.Vault.Enabled {
		cli, err := vault.New(ctx)
		if err != nil {
			logOut.Fatalf("vault client: %v", err)
		}
		secrets = cli
		logOut.Infow("vault client online")
	}

	//
	// ── 3.  Tenant resolution (lazy, cached) ───────────────────────────
	//
	conns := conncache.New(nil)
	tenants := tenant.New(masterDB, conns, secrets)

	//
	// ── 4.  GeoIP (optional) ───────────────────────────────────────────
	//
	if cfg.GeoIP.DBPath != "" {
		if err := requestinfo.InitGeo(cfg.GeoIP.DBPath); err != nil {
			logOut.Warnw("geoip disabled", "err", err)
		}
	}

	//
	// ── 5.  External collaborators (optional) ──────────────────────────
	//
	var mediaClient *media.Client
	if cfg.Media.BaseURL != "" {
		mediaClient = media.New(cfg.Media.BaseURL, cfg.Media.APIKey)
	}
	var textgenClient *textgen.Client
	if cfg.Textgen.BaseURL != "" {
		textgenClient = textgen.New(cfg.Textgen.BaseURL, cfg.Textgen.APIKey)
	}

	//
	// ── 6.  HTTP ───────────────────────────────────────────────────────
	//
	handler := api.New(masterDB, tenants, mediaClient, textgenClient)
	srv := server.New(cfg.HTTP.ListenAddr, handler)

	go func() {
		<-ctx.Done()
		logOut.Infow("shutting down")
		_ = srv.Shutdown(context.Background())
	}()

	logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logOut.Fatalf("http server: %v", err)
	}
}
