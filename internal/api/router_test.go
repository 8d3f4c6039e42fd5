// internal/api/router_test.go
//
// End-to-end handler tests over the chi route table using httptest and
// sqlmock-backed databases.  The tenant subtree is exercised through the
// resolver middleware, not by calling handlers directly.
//
// Run: go test ./internal/api -v

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/siteforge/console/internal/conncache"
	"github.com/siteforge/console/internal/tenant"
)

// newTestServer builds the full route table over sqlmock databases.  The
// returned tenant mock backs every connection string the opener sees.
func newTestServer(t *testing.T) (http.Handler, sqlmock.Sqlmock, sqlmock.Sqlmock) {
	t.Helper()

	masterRaw, masterMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock master: %v", err)
	}
	t.Cleanup(func() { masterRaw.Close() })
	master := sqlx.NewDb(masterRaw, "sqlmock")

	tenantRaw, tenantMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock tenant: %v", err)
	}
	t.Cleanup(func() { tenantRaw.Close() })
	tenantDB := sqlx.NewDb(tenantRaw, "sqlmock")

	conns := conncache.New(func(connStr string) (*sqlx.DB, error) {
		return tenantDB, nil
	})
	tenants := tenant.New(master, conns, nil)

	return New(master, tenants, nil, nil), masterMock, tenantMock
}

func TestHealthz(t *testing.T) {
	h, masterMock, _ := newTestServer(t)
	masterMock.ExpectPing()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Connected bool `json:"connected"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Connected {
		t.Error("connected = false, want true")
	}
}

func TestTenantRoute_UnknownUsername(t *testing.T) {
	h, masterMock, _ := newTestServer(t)

	masterMock.ExpectQuery(`SELECT connection_string\s+FROM\s+admins`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"connection_string"}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ghost/healthz", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Unable to connect to site database") {
		t.Errorf("body %q missing connection-error banner", rec.Body.String())
	}
}

func TestTenantHealthz(t *testing.T) {
	h, masterMock, tenantMock := newTestServer(t)

	masterMock.ExpectQuery(`SELECT connection_string\s+FROM\s+admins`).
		WithArgs("blog-nine").
		WillReturnRows(sqlmock.NewRows([]string{"connection_string"}).
			AddRow("postgres://u:p@h/db"))
	tenantMock.ExpectQuery(`SELECT 1 AS connected`).
		WillReturnRows(sqlmock.NewRows([]string{"connected"}).AddRow(1))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blog-nine/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}
	if err := masterMock.ExpectationsWereMet(); err != nil {
		t.Errorf("master expectations: %v", err)
	}
	if err := tenantMock.ExpectationsWereMet(); err != nil {
		t.Errorf("tenant expectations: %v", err)
	}
}

func TestSecurityHeaders(t *testing.T) {
	h, masterMock, _ := newTestServer(t)
	masterMock.ExpectPing()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	// Result() snapshots the headers WriteHeader sent, the same set a
	// client sees over a real connection.
	sent := rec.Result().Header
	for _, header := range []string{
		"X-Content-Type-Options",
		"X-Frame-Options",
		"Content-Security-Policy",
	} {
		if sent.Get(header) == "" {
			t.Errorf("missing %s header on the sent response", header)
		}
	}
}
