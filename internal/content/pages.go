package content

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/siteforge/console/internal/metrics"
)

// Page mirrors one row of the tenant `pages` table (about, contact,
// privacy policy, and similar standalone pages).
type Page struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Slug      string    `db:"slug" json:"slug"`
	Content   string    `db:"content" json:"content"`
	Status    string    `db:"status" json:"status"`
	Language  string    `db:"language" json:"language"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// PagePayload is the create/update body.
type PagePayload struct {
	Title    string `json:"title" validate:"required"`
	Slug     string `json:"slug" validate:"required"`
	Content  string `json:"content"`
	Status   string `json:"status" validate:"required,oneof=draft published"`
	Language string `json:"language" validate:"required"`
}

// ListPages returns every page, optionally filtered by language.
func ListPages(ctx context.Context, db *sqlx.DB, language string) ([]Page, error) {
	q := `
        SELECT id, title, slug, content, status, language, created_at, updated_at
        FROM   pages`
	args := []any{}
	if language != "" {
		q += `
        WHERE  language = $1`
		args = append(args, language)
	}
	q += `
        ORDER BY title`

	var rows []Page
	if err := db.SelectContext(ctx, &rows, q, args...); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("pages").Inc()
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return rows, nil
}

// CreatePage inserts one page and returns its id.
func CreatePage(ctx context.Context, db *sqlx.DB, p PagePayload) (int64, error) {
	const q = `
        INSERT INTO pages (title, slug, content, status, language)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	var id int64
	if err := db.GetContext(ctx, &id, q, p.Title, p.Slug, p.Content, p.Status, p.Language); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("pages").Inc()
		return 0, fmt.Errorf("create page: %w", err)
	}
	return id, nil
}

// UpdatePage rewrites one page row.
func UpdatePage(ctx context.Context, db *sqlx.DB, id int64, p PagePayload) error {
	const q = `
        UPDATE pages
        SET    title = $1, slug = $2, content = $3, status = $4, language = $5,
               updated_at = CURRENT_TIMESTAMP
        WHERE  id = $6`

	if _, err := db.ExecContext(ctx, q, p.Title, p.Slug, p.Content, p.Status, p.Language, id); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("pages").Inc()
		return fmt.Errorf("update page %d: %w", id, err)
	}
	return nil
}

// DeletePage removes one page row.
func DeletePage(ctx context.Context, db *sqlx.DB, id int64) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM pages WHERE id = $1`, id); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("pages").Inc()
		return fmt.Errorf("delete page %d: %w", id, err)
	}
	return nil
}
