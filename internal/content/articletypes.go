package content

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/siteforge/console/internal/metrics"
)

// ArticleType is one row of the tenant `article_types` lookup table
// (review, listicle, news, and whatever else the site defines).
type ArticleType struct {
	ID          int64  `db:"id" json:"id"`
	ArticleType string `db:"article_type" json:"article_type"`
}

// ListArticleTypes returns the lookup rows for the editor's type select.
func ListArticleTypes(ctx context.Context, db *sqlx.DB) ([]ArticleType, error) {
	const q = `
        SELECT id, article_type
        FROM   article_types
        ORDER BY article_type`

	var rows []ArticleType
	if err := db.SelectContext(ctx, &rows, q); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("article_types").Inc()
		return nil, fmt.Errorf("list article types: %w", err)
	}
	return rows, nil
}
