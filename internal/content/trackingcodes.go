package content

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/siteforge/console/internal/metrics"
)

// TrackingCode mirrors one row of the tenant `tracking_codes` table:
// analytics or ad snippets injected into the public site's head or body.
type TrackingCode struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Code      string `db:"code" json:"code"`
	Placement string `db:"placement" json:"placement"`
	Enabled   bool   `db:"enabled" json:"enabled"`
}

// TrackingCodePayload is the create/update body.
type TrackingCodePayload struct {
	Name      string `json:"name" validate:"required"`
	Code      string `json:"code" validate:"required"`
	Placement string `json:"placement" validate:"required,oneof=head body"`
	Enabled   bool   `json:"enabled"`
}

// ListTrackingCodes returns every snippet.
func ListTrackingCodes(ctx context.Context, db *sqlx.DB) ([]TrackingCode, error) {
	const q = `
        SELECT id, name, code, placement, enabled
        FROM   tracking_codes
        ORDER BY name`

	var rows []TrackingCode
	if err := db.SelectContext(ctx, &rows, q); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("tracking_codes").Inc()
		return nil, fmt.Errorf("list tracking codes: %w", err)
	}
	return rows, nil
}

// CreateTrackingCode inserts one snippet and returns its id.
func CreateTrackingCode(ctx context.Context, db *sqlx.DB, p TrackingCodePayload) (int64, error) {
	const q = `
        INSERT INTO tracking_codes (name, code, placement, enabled)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	var id int64
	if err := db.GetContext(ctx, &id, q, p.Name, p.Code, p.Placement, p.Enabled); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("tracking_codes").Inc()
		return 0, fmt.Errorf("create tracking code: %w", err)
	}
	return id, nil
}

// UpdateTrackingCode rewrites one snippet.
func UpdateTrackingCode(ctx context.Context, db *sqlx.DB, id int64, p TrackingCodePayload) error {
	const q = `
        UPDATE tracking_codes
        SET    name = $1, code = $2, placement = $3, enabled = $4,
               updated_at = CURRENT_TIMESTAMP
        WHERE  id = $5`

	if _, err := db.ExecContext(ctx, q, p.Name, p.Code, p.Placement, p.Enabled, id); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("tracking_codes").Inc()
		return fmt.Errorf("update tracking code %d: %w", id, err)
	}
	return nil
}

// DeleteTrackingCode removes one snippet.
func DeleteTrackingCode(ctx context.Context, db *sqlx.DB, id int64) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM tracking_codes WHERE id = $1`, id); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("tracking_codes").Inc()
		return fmt.Errorf("delete tracking code %d: %w", id, err)
	}
	return nil
}
