// internal/content/order.go
//
// Fractional-index helpers for drag-and-drop ordering.
//
// Context
// -------
// Manually ordered tables carry an integer display_order with gaps of 10
// between freshly created rows.  Dropping a row between two neighbors
// assigns the midpoint of their orders; dropping before the first row
// halves its order, and dropping after the last adds the standard gap.
// Integer midpoints collide once a gap closes to 1; repeated reorders
// without periodic renumbering exhaust the precision.  That is a known
// limitation of the scheme, accepted at this scale.
package content

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/siteforge/console/internal/metrics"
)

// OrderGap is the spacing left between newly appended rows.
const OrderGap = 10

// MidpointOrder computes the order for a row dropped between two siblings.
func MidpointOrder(prev, next int) int { return (prev + next) / 2 }

// BeforeFirstOrder computes the order for a row dropped before the first
// sibling.
func BeforeFirstOrder(first int) int { return first / 2 }

// AfterLastOrder computes the order for a row dropped after the last
// sibling.
func AfterLastOrder(last int) int { return last + OrderGap }

// reorderableTables whitelists the identifiers Reorder may interpolate.
// Table names cannot be bound as parameters, so anything not listed here
// is rejected before SQL is built.
var reorderableTables = map[string]struct{}{
	"categories":       {},
	"social_links":     {},
	"article_sections": {},
	"article_products": {},
}

// Reorder persists one row's new display_order.
func Reorder(ctx context.Context, db *sqlx.DB, table string, id int64, order int) error {
	if _, ok := reorderableTables[table]; !ok {
		return fmt.Errorf("table %q is not reorderable", table)
	}

	q := fmt.Sprintf(`
        UPDATE %s
        SET    display_order = $1, updated_at = CURRENT_TIMESTAMP
        WHERE  id = $2`, table)

	if _, err := db.ExecContext(ctx, q, order, id); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues(table).Inc()
		return fmt.Errorf("reorder %s %d: %w", table, id, err)
	}
	return nil
}
