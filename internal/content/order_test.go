// internal/content/order_test.go
//
// Unit-tests for the fractional-index ordering helpers.
//
// Run: go test ./internal/content -v

package content

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func TestOrderHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"midpoint between 10 and 20", MidpointOrder(10, 20), 15},
		{"before first at 10", BeforeFirstOrder(10), 5},
		{"after last at 20", AfterLastOrder(20), 30},
		{"closed gap collides", MidpointOrder(10, 11), 10},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestReorder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	sdb := sqlx.NewDb(db, "sqlmock")

	mock.ExpectExec(`UPDATE categories\s+SET\s+display_order = \$1, updated_at = CURRENT_TIMESTAMP\s+WHERE\s+id = \$2`).
		WithArgs(15, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := Reorder(context.Background(), sdb, "categories", 3, 15); err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestReorder_RejectsUnknownTable(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	sdb := sqlx.NewDb(db, "sqlmock")

	if err := Reorder(context.Background(), sdb, "admins; DROP TABLE admins", 1, 10); err == nil {
		t.Fatal("non-whitelisted table must be rejected before SQL is built")
	}
}
