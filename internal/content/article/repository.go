// internal/content/article/repository.go
//
// SQL against one tenant database for the article screens.
//
// Context
// -------
// Every function takes the caller's resolved tenant handle; nothing here
// touches the master registry.  Writes follow the editor's save flow:
// parent row first, then delete-and-reinsert the child sections and
// products.  The child inserts run concurrently and are NOT wrapped in a
// transaction, so a failure mid-save can leave a partially written
// article.  That matches the dashboard's observed behavior; the gap is
// documented by a test rather than papered over here.
package article

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/siteforge/console/internal/metrics"
)

const listQuery = `
    SELECT a.id, a.title, a.slug, a.type_id, a.category_id, a.author_id,
           a.status, a.language, a.created_at, a.updated_at,
           t.article_type  AS type_name,
           c.name          AS category_name,
           au.name         AS author_name,
           s.subtitle, s.section_content,
           p.product_name, p.product_image, p.product_description,
           p.pros, p.cons, p.affiliate_url, p.brand_affiliate_url,
           p.rating, p.display_order
    FROM   articles a
    LEFT JOIN categories       c  ON c.id = a.category_id
    LEFT JOIN article_types    t  ON t.id = a.type_id
    LEFT JOIN authors          au ON au.id = a.author_id
    LEFT JOIN article_sections s  ON s.article_id = a.id
    LEFT JOIN article_products p  ON p.article_id = a.id`

// List returns every article for the tenant, aggregated, newest first.
// An empty language returns all languages.
func List(ctx context.Context, db *sqlx.DB, language string) ([]Article, error) {
	q := listQuery
	args := []any{}
	if language != "" {
		q += `
    WHERE  a.language = $1`
		args = append(args, language)
	}
	q += `
    ORDER BY a.created_at DESC`

	var rows []Row
	if err := db.SelectContext(ctx, &rows, q, args...); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("articles").Inc()
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return Aggregate(rows), nil
}

// Get returns one aggregated article, or ErrNoArticle.
func Get(ctx context.Context, db *sqlx.DB, id int64) (*Article, error) {
	q := listQuery + `
    WHERE  a.id = $1`

	var rows []Row
	if err := db.SelectContext(ctx, &rows, q, id); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("articles").Inc()
		return nil, fmt.Errorf("get article %d: %w", id, err)
	}
	agg := Aggregate(rows)
	if len(agg) == 0 {
		return nil, ErrNoArticle
	}
	return &agg[0], nil
}

// ErrNoArticle is returned by Get for an unknown id.
var ErrNoArticle = fmt.Errorf("article not found")

// SectionInput is one editor body block on the save payload.
type SectionInput struct {
	Title   string `json:"title"`
	Content string `json:"content" validate:"required"`
}

// ProductInput is one reviewed product on the save payload.
type ProductInput struct {
	Name              string  `json:"name" validate:"required"`
	ImageURL          string  `json:"image_url"`
	Description       string  `json:"description"`
	Pros              string  `json:"pros"`
	Cons              string  `json:"cons"`
	AffiliateURL      string  `json:"affiliate_url"`
	BrandAffiliateURL string  `json:"brand_affiliate_url"`
	Rating            float64 `json:"rating" validate:"gte=0,lte=5"`
	DisplayOrder      int     `json:"display_order"`
}

// Payload is the save body for create and update.
type Payload struct {
	Title      string         `json:"title" validate:"required"`
	Slug       string         `json:"slug" validate:"required"`
	TypeID     *int64         `json:"type_id"`
	CategoryID *int64         `json:"category_id"`
	AuthorID   *int64         `json:"author_id"`
	Status     string         `json:"status" validate:"required,oneof=draft published"`
	Language   string         `json:"language" validate:"required"`
	Sections   []SectionInput `json:"sections" validate:"dive"`
	Products   []ProductInput `json:"products" validate:"dive"`
}

// Create inserts the parent row, then the children.  Returns the new id.
func Create(ctx context.Context, db *sqlx.DB, p Payload) (int64, error) {
	const q = `
        INSERT INTO articles (title, slug, type_id, category_id, author_id, status, language)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id`

	var id int64
	err := db.GetContext(ctx, &id, q,
		p.Title, p.Slug, p.TypeID, p.CategoryID, p.AuthorID, p.Status, p.Language)
	if err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("articles").Inc()
		return 0, fmt.Errorf("create article: %w", err)
	}

	if err := insertChildren(ctx, db, id, p); err != nil {
		return id, err
	}
	return id, nil
}

// Update rewrites the parent row, deletes the old children, and reinserts
// the ones on the payload.  Deletes complete before any insert begins.
func Update(ctx context.Context, db *sqlx.DB, id int64, p Payload) error {
	const q = `
        UPDATE articles
        SET    title = $1, slug = $2, type_id = $3, category_id = $4,
               author_id = $5, status = $6, language = $7,
               updated_at = CURRENT_TIMESTAMP
        WHERE  id = $8`

	if _, err := db.ExecContext(ctx, q,
		p.Title, p.Slug, p.TypeID, p.CategoryID, p.AuthorID, p.Status, p.Language, id); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("articles").Inc()
		return fmt.Errorf("update article %d: %w", id, err)
	}

	if err := deleteChildren(ctx, db, id); err != nil {
		return err
	}
	return insertChildren(ctx, db, id, p)
}

// Delete removes the children, then the parent.
func Delete(ctx context.Context, db *sqlx.DB, id int64) error {
	if err := deleteChildren(ctx, db, id); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("articles").Inc()
		return fmt.Errorf("delete article %d: %w", id, err)
	}
	return nil
}

// insertChildren writes sections and products concurrently.  Sibling order
// after the concurrent inserts is carried only by the display_order value
// passed per row, never by insertion sequence.
func insertChildren(ctx context.Context, db *sqlx.DB, articleID int64, p Payload) error {
	g, ctx := errgroup.WithContext(ctx)

	for i, s := range p.Sections {
		g.Go(func() error {
			const q = `
                INSERT INTO article_sections (article_id, subtitle, section_content, display_order)
                VALUES ($1, $2, $3, $4)`
			_, err := db.ExecContext(ctx, q, articleID, s.Title, s.Content, (i+1)*10)
			return err
		})
	}
	for i, pr := range p.Products {
		order := pr.DisplayOrder
		if order == 0 {
			order = (i + 1) * 10
		}
		g.Go(func() error {
			const q = `
                INSERT INTO article_products (article_id, product_name, product_image,
                       product_description, pros, cons, affiliate_url, brand_affiliate_url,
                       rating, display_order)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
			_, err := db.ExecContext(ctx, q, articleID, pr.Name, pr.ImageURL,
				pr.Description, pr.Pros, pr.Cons, pr.AffiliateURL, pr.BrandAffiliateURL,
				pr.Rating, order)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("articles").Inc()
		return fmt.Errorf("save article children: %w", err)
	}
	return nil
}

// deleteChildren removes all sections and products for one article.
func deleteChildren(ctx context.Context, db *sqlx.DB, articleID int64) error {
	if _, err := db.ExecContext(ctx,
		`DELETE FROM article_sections WHERE article_id = $1`, articleID); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("articles").Inc()
		return fmt.Errorf("delete article sections: %w", err)
	}
	if _, err := db.ExecContext(ctx,
		`DELETE FROM article_products WHERE article_id = $1`, articleID); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("articles").Inc()
		return fmt.Errorf("delete article products: %w", err)
	}
	return nil
}
