// internal/requestinfo/requestinfo.go
//
// Per-request metadata: user-agent fingerprint, IP + geolocation, URL,
// and timestamp.  These structs are inert; they hold no handles or large
// buffers, so they are safe to log or JSON-encode.
//
// Dependencies
//   - github.com/avct/uasurfer           (UA parsing)
//   - github.com/oschwald/geoip2-golang  (MaxMind lookup, optional)
package requestinfo

import (
	"context"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avct/uasurfer"
	"github.com/oschwald/geoip2-golang"
)

//
// Struct definitions
//

// UA holds the parsed user-agent properties logged with each API call.
type UA struct {
	Raw     string // entire User-Agent header
	Browser string // "Chrome", "Firefox", "Safari", …
	Version string // "124.0.6367"
	OS      string // "macOS", "Windows", "Android", …
	Device  string // "Desktop", "Phone", "Tablet", …
	IsBot   bool
}

// Geo holds IP-based geolocation hints.  Best-effort; empty when the
// database has no match or no database is configured.
type Geo struct {
	IP         net.IP
	CountryISO string // "US", "CA", "FR", …
	City       string // "Chicago", "Paris", …
}

// RequestInfo is stored in the request context by Enrich.
type RequestInfo struct {
	UA        UA
	Geo       Geo
	URL       *url.URL // pointer copy, safe to dereference read-only
	Timestamp time.Time
}

//
// Package-level state
//

// geoReader is a singleton MaxMind handle, safe for concurrent reads.
// Nil when geolocation is not configured; lookups then return IP only.
var geoReader *geoip2.Reader

// InitGeo opens the GeoLite2-City database.  Call once from main; an
// error leaves enrichment running without geo data.
func InitGeo(dbPath string) error {
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return err
	}
	geoReader = r
	return nil
}

//
// Context plumbing
//

type ctxKey struct{} // unexported, collision-proof

// FromContext returns the pointer previously stored by Enrich, or nil if
// the middleware has not run.
func FromContext(ctx context.Context) *RequestInfo {
	v, _ := ctx.Value(ctxKey{}).(*RequestInfo)
	return v
}

//
// Internal helpers
//

// parseUA converts a raw header into our UA struct using uasurfer.
func parseUA(uaHeader string) UA {
	u := uasurfer.Parse(uaHeader)

	osName := strings.TrimPrefix(u.OS.Name.String(), "OS")
	if osName == "MacOSX" {
		osName = "macOS"
	}

	return UA{
		Raw:     uaHeader,
		Browser: strings.TrimPrefix(u.Browser.Name.String(), "Browser"),
		Version: trimVersion(u.Browser.Version),
		OS:      osName,
		Device:  deviceTypeToString(u.DeviceType),
		IsBot:   u.IsBot(),
	}
}

// trimVersion builds "major.minor.patch" and removes trailing ".0".
func trimVersion(v uasurfer.Version) string {
	out := strings.Join([]string{
		strconv.Itoa(v.Major),
		strconv.Itoa(v.Minor),
		strconv.Itoa(v.Patch),
	}, ".")
	for strings.HasSuffix(out, ".0") {
		out = strings.TrimSuffix(out, ".0")
	}
	if out == "" {
		return "0"
	}
	return out
}

// deviceTypeToString maps uasurfer.DeviceType to a user-friendly string.
func deviceTypeToString(dt uasurfer.DeviceType) string {
	switch dt {
	case uasurfer.DeviceComputer:
		return "Desktop"
	case uasurfer.DevicePhone:
		return "Phone"
	case uasurfer.DeviceTablet:
		return "Tablet"
	case uasurfer.DeviceTV:
		return "TV"
	default:
		return "Unknown"
	}
}

// lookupGeo returns best-effort Geo data using the global reader.
func lookupGeo(ip net.IP) Geo {
	if geoReader == nil || ip == nil {
		return Geo{IP: ip}
	}
	rec, err := geoReader.City(ip)
	if err != nil {
		return Geo{IP: ip}
	}
	return Geo{
		IP:         ip,
		CountryISO: rec.Country.IsoCode,
		City:       rec.City.Names["en"],
	}
}
