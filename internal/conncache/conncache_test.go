// internal/conncache/conncache_test.go
//
// Unit-tests for the connection-handle identity cache using sqlmock.
//
// Run: go test ./internal/conncache -v

package conncache

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

// mockOpener returns a fresh sqlmock-backed handle per open and counts
// invocations so tests can assert open-once behavior.
type mockOpener struct {
	opens int
	mocks map[string]sqlmock.Sqlmock
}

func newMockOpener() *mockOpener {
	return &mockOpener{mocks: make(map[string]sqlmock.Sqlmock)}
}

func (m *mockOpener) open(connStr string) (*sqlx.DB, error) {
	m.opens++
	db, mock, err := sqlmock.New()
	if err != nil {
		return nil, err
	}
	m.mocks[connStr] = mock
	return sqlx.NewDb(db, "sqlmock"), nil
}

func TestGet_IdentityCached(t *testing.T) {
	op := newMockOpener()
	c := New(op.open)

	first, err := c.Get("postgres://tenant-a")
	if err != nil {
		t.Fatalf("first Get: %v", err)
	}
	second, err := c.Get("postgres://tenant-a")
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}

	if first != second {
		t.Fatal("same connection string must yield the same handle instance")
	}
	if op.opens != 1 {
		t.Fatalf("opener invoked %d times, want 1", op.opens)
	}
}

func TestGet_DistinctStringsDistinctHandles(t *testing.T) {
	op := newMockOpener()
	c := New(op.open)

	a, err := c.Get("postgres://tenant-a")
	if err != nil {
		t.Fatalf("Get a: %v", err)
	}
	b, err := c.Get("postgres://tenant-b")
	if err != nil {
		t.Fatalf("Get b: %v", err)
	}

	if a == b {
		t.Fatal("distinct connection strings must yield distinct handles")
	}
	if got := c.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
}

func TestGet_EmptyString(t *testing.T) {
	c := New(newMockOpener().open)

	if _, err := c.Get(""); !errors.Is(err, ErrInvalidConnString) {
		t.Fatalf("empty string: got %v, want ErrInvalidConnString", err)
	}
}

func TestGet_OpenFailure(t *testing.T) {
	boom := errors.New("bad dsn")
	c := New(func(string) (*sqlx.DB, error) { return nil, boom })

	_, err := c.Get("nonsense")
	if !errors.Is(err, ErrInvalidConnString) {
		t.Fatalf("got %v, want ErrInvalidConnString", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("underlying open error not wrapped: %v", err)
	}
	if got := c.Len(); got != 0 {
		t.Fatalf("failed open must not be cached, Len() = %d", got)
	}
}

func TestTestConnection(t *testing.T) {
	op := newMockOpener()
	c := New(op.open)

	const connStr = "postgres://tenant-a"
	if _, err := c.Get(connStr); err != nil {
		t.Fatalf("Get: %v", err)
	}

	op.mocks[connStr].ExpectQuery("SELECT 1 AS connected").
		WillReturnRows(sqlmock.NewRows([]string{"connected"}).AddRow(1))

	ok, err := c.TestConnection(context.Background(), connStr)
	if err != nil {
		t.Fatalf("TestConnection: %v", err)
	}
	if !ok {
		t.Fatal("probe must report true when the database answers 1")
	}
	if err := op.mocks[connStr].ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestInvalidate(t *testing.T) {
	op := newMockOpener()
	c := New(op.open)

	const connStr = "postgres://tenant-a"
	first, err := c.Get(connStr)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	c.Invalidate(connStr)
	if got := c.Len(); got != 0 {
		t.Fatalf("Len() after Invalidate = %d, want 0", got)
	}

	second, err := c.Get(connStr)
	if err != nil {
		t.Fatalf("Get after Invalidate: %v", err)
	}
	if first == second {
		t.Fatal("Invalidate must force a fresh handle on the next Get")
	}
	if op.opens != 2 {
		t.Fatalf("opener invoked %d times, want 2", op.opens)
	}
}
