// internal/config/model.go
//
// Typed configuration model for the console.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   - optional `.env`                          – dotenv values,
//   - `conf/global.yaml`                       – primary static file,
//   - `CONSOLE_`-prefixed environment overrides – highest precedence.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   - Struct tags use `koanf:"…"`, not `yaml:"…"` — Koanf ignores `yaml`
//     tags unless configured otherwise.
//   - The `Paths` block is filled at runtime; YAML must not try to set it.
package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
}

//
// Database section
//

// Database holds the master control-plane DSN.  Tenant connection strings
// are not configured here; they live in the registry `admins` table.
type Database struct {
	MasterDSN string `koanf:"master_dsn" validate:"required"`
}

//
// GeoIP section
//

// GeoIP points at an optional GeoLite2-City database.  Empty path leaves
// geolocation enrichment off.
type GeoIP struct {
	DBPath string `koanf:"db_path"`
}

//
// Media section
//

// Media configures the external image store the content editors upload to.
type Media struct {
	BaseURL string `koanf:"base_url" validate:"omitempty,url"`
	APIKey  string `koanf:"api_key"`
}

//
// Textgen section
//

// Textgen configures the external text-generation service editors use
// for article drafts.  Empty base URL leaves the feature off.
type Textgen struct {
	BaseURL string `koanf:"base_url" validate:"omitempty,url"`
	APIKey  string `koanf:"api_key"`
}

//
// Vault section
//

// Vault toggles `vault:` reference resolution for registry rows.  The
// client itself reads VAULT_ADDR / VAULT_TOKEN from the environment.
type Vault struct {
	Enabled bool `koanf:"enabled"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.  The loader
// discovers `Root` so later code can build absolute file paths.
type Paths struct {
	Root string // CONSOLE_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	GeoIP    GeoIP    `koanf:"geoip"`
	Media    Media    `koanf:"media"`
	Textgen  Textgen  `koanf:"textgen"`
	Vault    Vault    `koanf:"vault"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
