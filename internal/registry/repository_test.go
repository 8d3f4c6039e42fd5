// internal/registry/repository_test.go
//
// Unit-tests for registry lookups using sqlmock.
//
// Run: go test ./internal/registry -v

package registry

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestByUsername_ActiveOnly(t *testing.T) {
	db, mock := newDB(t)

	// The query itself filters on status, so an inactive row with the
	// same username never reaches the client: the mock returns the one
	// row the active-status predicate selects.
	mock.ExpectQuery(`SELECT connection_string\s+FROM\s+admins`).
		WithArgs("a").
		WillReturnRows(sqlmock.NewRows([]string{"connection_string"}).AddRow("X"))

	got, err := ByUsername(context.Background(), db, "a")
	if err != nil {
		t.Fatalf("ByUsername: %v", err)
	}
	if got != "X" {
		t.Fatalf("connection string = %q, want %q", got, "X")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestByUsername_NotFound(t *testing.T) {
	db, mock := newDB(t)

	mock.ExpectQuery(`SELECT connection_string\s+FROM\s+admins`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := ByUsername(context.Background(), db, "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestByUsername_QueryError(t *testing.T) {
	db, mock := newDB(t)

	boom := errors.New("connection refused")
	mock.ExpectQuery(`SELECT connection_string\s+FROM\s+admins`).
		WithArgs("a").
		WillReturnError(boom)

	_, err := ByUsername(context.Background(), db, "a")
	if errors.Is(err, ErrNotFound) {
		t.Fatal("transport failure must not be reported as tenant-not-found")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("underlying error not wrapped: %v", err)
	}
}

func TestAll_IncludesInactiveRows(t *testing.T) {
	db, mock := newDB(t)

	cols := []string{"id", "username", "connection_string", "status", "created_at", "updated_at"}
	now := time.Now()
	// No WHERE clause between FROM and ORDER BY: the listing must not
	// filter on status, or a deactivated tenant disappears from the only
	// screen that could reactivate it.
	mock.ExpectQuery(`FROM\s+admins\s+ORDER\s+BY\s+username`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, "blog-nine", "postgres://blog-nine", StatusActive, now, now).
			AddRow(2, "dormant", "postgres://dormant", StatusInactive, now, now))

	rows, err := All(context.Background(), db)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	if rows[1].Status != StatusInactive {
		t.Errorf("status = %q, want inactive row preserved", rows[1].Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestInsert(t *testing.T) {
	db, mock := newDB(t)

	mock.ExpectQuery(`INSERT INTO admins`).
		WithArgs("blog-nine", "postgres://blog-nine", StatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	id, err := Insert(context.Background(), db, "blog-nine", "postgres://blog-nine", StatusActive)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id != 7 {
		t.Fatalf("id = %d, want 7", id)
	}
}

func TestUpdateStatus(t *testing.T) {
	db, mock := newDB(t)

	mock.ExpectExec(`UPDATE admins`).
		WithArgs(StatusInactive, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := UpdateStatus(context.Background(), db, 7, StatusInactive); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
