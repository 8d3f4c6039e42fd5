package content

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/siteforge/console/internal/metrics"
)

// SocialLink mirrors one row of the tenant `social_links` table.
type SocialLink struct {
	ID           int64  `db:"id" json:"id"`
	Platform     string `db:"platform" json:"platform"`
	URL          string `db:"url" json:"url"`
	DisplayOrder int    `db:"display_order" json:"display_order"`
}

// SocialLinkPayload is the create/update body.
type SocialLinkPayload struct {
	Platform string `json:"platform" validate:"required"`
	URL      string `json:"url" validate:"required,url"`
}

// ListSocialLinks returns links in display order.
func ListSocialLinks(ctx context.Context, db *sqlx.DB) ([]SocialLink, error) {
	const q = `
        SELECT id, platform, url, display_order
        FROM   social_links
        ORDER BY display_order`

	var rows []SocialLink
	if err := db.SelectContext(ctx, &rows, q); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("social_links").Inc()
		return nil, fmt.Errorf("list social links: %w", err)
	}
	return rows, nil
}

// CreateSocialLink appends a link at the end of the ordering.
func CreateSocialLink(ctx context.Context, db *sqlx.DB, p SocialLinkPayload) (int64, error) {
	const q = `
        INSERT INTO social_links (platform, url, display_order)
        VALUES ($1, $2,
                (SELECT COALESCE(MAX(display_order), 0) + 10 FROM social_links))
        RETURNING id`

	var id int64
	if err := db.GetContext(ctx, &id, q, p.Platform, p.URL); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("social_links").Inc()
		return 0, fmt.Errorf("create social link: %w", err)
	}
	return id, nil
}

// UpdateSocialLink rewrites platform and URL.
func UpdateSocialLink(ctx context.Context, db *sqlx.DB, id int64, p SocialLinkPayload) error {
	const q = `
        UPDATE social_links
        SET    platform = $1, url = $2, updated_at = CURRENT_TIMESTAMP
        WHERE  id = $3`

	if _, err := db.ExecContext(ctx, q, p.Platform, p.URL, id); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("social_links").Inc()
		return fmt.Errorf("update social link %d: %w", id, err)
	}
	return nil
}

// DeleteSocialLink removes one link.
func DeleteSocialLink(ctx context.Context, db *sqlx.DB, id int64) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM social_links WHERE id = $1`, id); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("social_links").Inc()
		return fmt.Errorf("delete social link %d: %w", id, err)
	}
	return nil
}
