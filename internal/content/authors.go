package content

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/siteforge/console/internal/metrics"
)

// Author mirrors one row of the tenant `authors` table.
type Author struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Bio       string    `db:"bio" json:"bio"`
	ImageURL  string    `db:"image_url" json:"image_url"`
	Language  string    `db:"language" json:"language"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AuthorPayload is the create/update body.
type AuthorPayload struct {
	Name     string `json:"name" validate:"required"`
	Bio      string `json:"bio"`
	ImageURL string `json:"image_url"`
	Language string `json:"language" validate:"required"`
}

// ListAuthors returns every author, optionally filtered by language.
func ListAuthors(ctx context.Context, db *sqlx.DB, language string) ([]Author, error) {
	q := `
        SELECT id, name, bio, image_url, language, created_at, updated_at
        FROM   authors`
	args := []any{}
	if language != "" {
		q += `
        WHERE  language = $1`
		args = append(args, language)
	}
	q += `
        ORDER BY name`

	var rows []Author
	if err := db.SelectContext(ctx, &rows, q, args...); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("authors").Inc()
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return rows, nil
}

// CreateAuthor inserts one author and returns its id.
func CreateAuthor(ctx context.Context, db *sqlx.DB, p AuthorPayload) (int64, error) {
	const q = `
        INSERT INTO authors (name, bio, image_url, language)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	var id int64
	if err := db.GetContext(ctx, &id, q, p.Name, p.Bio, p.ImageURL, p.Language); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("authors").Inc()
		return 0, fmt.Errorf("create author: %w", err)
	}
	return id, nil
}

// UpdateAuthor rewrites one author row.
func UpdateAuthor(ctx context.Context, db *sqlx.DB, id int64, p AuthorPayload) error {
	const q = `
        UPDATE authors
        SET    name = $1, bio = $2, image_url = $3, language = $4,
               updated_at = CURRENT_TIMESTAMP
        WHERE  id = $5`

	if _, err := db.ExecContext(ctx, q, p.Name, p.Bio, p.ImageURL, p.Language, id); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("authors").Inc()
		return fmt.Errorf("update author %d: %w", id, err)
	}
	return nil
}

// DeleteAuthor removes one author row.
func DeleteAuthor(ctx context.Context, db *sqlx.DB, id int64) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM authors WHERE id = $1`, id); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("authors").Inc()
		return fmt.Errorf("delete author %d: %w", id, err)
	}
	return nil
}
