// internal/tenant/cache_test.go
//
// Unit-tests for the lazy tenant cache.
//
// Workflow
// --------
// A sqlmock-backed master DB serves the registry lookups; an injected
// opener hands the connection cache sqlmock tenant handles.  The tests
// assert one registry query per username, handle sharing across tenants
// whose rows carry the same connection string, and vault-reference
// resolution through a fake SecretResolver.

package tenant

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/siteforge/console/internal/conncache"
)

func newMasterDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func mockOpener(t *testing.T) conncache.Opener {
	t.Helper()
	return func(string) (*sqlx.DB, error) {
		db, _, err := sqlmock.New()
		if err != nil {
			return nil, err
		}
		return sqlx.NewDb(db, "sqlmock"), nil
	}
}

func TestGet_LoadsOnceAndCaches(t *testing.T) {
	master, mock := newMasterDB(t)
	cache := New(master, conncache.New(mockOpener(t)), nil)

	// Exactly one registry query for any number of Gets.
	mock.ExpectQuery(`SELECT connection_string\s+FROM\s+admins`).
		WithArgs("blog-nine").
		WillReturnRows(sqlmock.NewRows([]string{"connection_string"}).AddRow("postgres://nine"))

	first, err := cache.Get(context.Background(), "blog-nine")
	if err != nil {
		t.Fatalf("first Get: %v", err)
	}
	second, err := cache.Get(context.Background(), "blog-nine")
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}

	if first != second {
		t.Fatal("repeat Get must return the cached Tenant")
	}
	if first.ConnectionString != "postgres://nine" {
		t.Fatalf("connection string = %q", first.ConnectionString)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("registry queried more than once: %v", err)
	}
}

func TestGet_SharedConnectionString(t *testing.T) {
	master, mock := newMasterDB(t)
	cache := New(master, conncache.New(mockOpener(t)), nil)

	mock.ExpectQuery(`SELECT connection_string\s+FROM\s+admins`).
		WithArgs("site-a").
		WillReturnRows(sqlmock.NewRows([]string{"connection_string"}).AddRow("postgres://shared"))
	mock.ExpectQuery(`SELECT connection_string\s+FROM\s+admins`).
		WithArgs("site-b").
		WillReturnRows(sqlmock.NewRows([]string{"connection_string"}).AddRow("postgres://shared"))

	a, err := cache.Get(context.Background(), "site-a")
	if err != nil {
		t.Fatalf("Get site-a: %v", err)
	}
	b, err := cache.Get(context.Background(), "site-b")
	if err != nil {
		t.Fatalf("Get site-b: %v", err)
	}

	if a.DB != b.DB {
		t.Fatal("tenants sharing a connection string must share one handle")
	}
}

func TestGet_LoadOutlivesCallerCancellation(t *testing.T) {
	master, mock := newMasterDB(t)
	cache := New(master, conncache.New(mockOpener(t)), nil)

	mock.ExpectQuery(`SELECT connection_string\s+FROM\s+admins`).
		WithArgs("blog-nine").
		WillReturnRows(sqlmock.NewRows([]string{"connection_string"}).AddRow("postgres://nine"))

	// The load runs on a detached context: a caller that has already
	// given up must not poison the entry for every deduped waiter.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ten, err := cache.Get(ctx, "blog-nine")
	if err != nil {
		t.Fatalf("Get with canceled caller context: %v", err)
	}
	if ten.ConnectionString != "postgres://nine" {
		t.Fatalf("connection string = %q", ten.ConnectionString)
	}
}

func TestGet_NotFound(t *testing.T) {
	master, mock := newMasterDB(t)
	cache := New(master, conncache.New(mockOpener(t)), nil)

	mock.ExpectQuery(`SELECT connection_string\s+FROM\s+admins`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := cache.Get(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

// fakeSecrets resolves every reference to one DSN and records lookups.
type fakeSecrets struct {
	calls int
	path  string
	key   string
}

func (f *fakeSecrets) GetKV(_ context.Context, path, key string, _ time.Duration) (string, error) {
	f.calls++
	f.path, f.key = path, key
	return "postgres://from-vault", nil
}

func TestGet_VaultReference(t *testing.T) {
	master, mock := newMasterDB(t)
	secrets := &fakeSecrets{}
	cache := New(master, conncache.New(mockOpener(t)), secrets)

	mock.ExpectQuery(`SELECT connection_string\s+FROM\s+admins`).
		WithArgs("blog-nine").
		WillReturnRows(sqlmock.NewRows([]string{"connection_string"}).
			AddRow("vault:secret/tenants/blog-nine#dsn"))

	ten, err := cache.Get(context.Background(), "blog-nine")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if ten.ConnectionString != "postgres://from-vault" {
		t.Fatalf("resolved DSN = %q", ten.ConnectionString)
	}
	if secrets.calls != 1 || secrets.path != "secret/tenants/blog-nine" || secrets.key != "dsn" {
		t.Fatalf("unexpected vault lookup: %+v", secrets)
	}
}

func TestResolveConnString_Malformed(t *testing.T) {
	_, err := resolveConnString(context.Background(), &fakeSecrets{}, "vault:no-key-part")
	if err == nil {
		t.Fatal("malformed vault reference must fail")
	}
}

func TestResolveConnString_NoClient(t *testing.T) {
	_, err := resolveConnString(context.Background(), nil, "vault:secret/x#dsn")
	if err == nil {
		t.Fatal("vault reference without a client must fail")
	}
}

func TestSnapshot(t *testing.T) {
	master, mock := newMasterDB(t)
	cache := New(master, conncache.New(mockOpener(t)), nil)

	mock.ExpectQuery(`SELECT connection_string\s+FROM\s+admins`).
		WithArgs("blog-nine").
		WillReturnRows(sqlmock.NewRows([]string{"connection_string"}).AddRow("postgres://nine"))

	if _, err := cache.Get(context.Background(), "blog-nine"); err != nil {
		t.Fatalf("Get: %v", err)
	}

	snap := cache.Snapshot()
	if len(snap) != 1 || snap[0].Username != "blog-nine" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap[0].LastSeen.IsZero() {
		t.Fatal("snapshot entry must carry a last-seen time")
	}
}
