package content

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/siteforge/console/internal/metrics"
)

// Category mirrors one row of the tenant `categories` table.  Categories
// are manually ordered; new rows land at the end with a display_order gap
// of 10 so editors can drag rows between existing ones.
type Category struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Slug         string `db:"slug" json:"slug"`
	Language     string `db:"language" json:"language"`
	DisplayOrder int    `db:"display_order" json:"display_order"`
}

// CategoryPayload is the create/update body.
type CategoryPayload struct {
	Name     string `json:"name" validate:"required"`
	Slug     string `json:"slug" validate:"required"`
	Language string `json:"language" validate:"required"`
}

// ListCategories returns categories in display order.
func ListCategories(ctx context.Context, db *sqlx.DB, language string) ([]Category, error) {
	q := `
        SELECT id, name, slug, language, display_order
        FROM   categories`
	args := []any{}
	if language != "" {
		q += `
        WHERE  language = $1`
		args = append(args, language)
	}
	q += `
        ORDER BY display_order`

	var rows []Category
	if err := db.SelectContext(ctx, &rows, q, args...); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("categories").Inc()
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return rows, nil
}

// CreateCategory inserts a category at the end of the ordering, leaving
// the usual gap of 10.
func CreateCategory(ctx context.Context, db *sqlx.DB, p CategoryPayload) (int64, error) {
	const q = `
        INSERT INTO categories (name, slug, language, display_order)
        VALUES ($1, $2, $3,
                (SELECT COALESCE(MAX(display_order), 0) + 10 FROM categories))
        RETURNING id`

	var id int64
	if err := db.GetContext(ctx, &id, q, p.Name, p.Slug, p.Language); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("categories").Inc()
		return 0, fmt.Errorf("create category: %w", err)
	}
	return id, nil
}

// UpdateCategory rewrites name, slug, and language; ordering changes go
// through Reorder.
func UpdateCategory(ctx context.Context, db *sqlx.DB, id int64, p CategoryPayload) error {
	const q = `
        UPDATE categories
        SET    name = $1, slug = $2, language = $3, updated_at = CURRENT_TIMESTAMP
        WHERE  id = $4`

	if _, err := db.ExecContext(ctx, q, p.Name, p.Slug, p.Language, id); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("categories").Inc()
		return fmt.Errorf("update category %d: %w", id, err)
	}
	return nil
}

// DeleteCategory removes one category row.
func DeleteCategory(ctx context.Context, db *sqlx.DB, id int64) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("categories").Inc()
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	return nil
}
