package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/siteforge/console/internal/metrics"
)

// CookieConfig mirrors the tenant `cookie_settings` table: one row per
// language holding the consent-banner copy and toggles.
type CookieConfig struct {
	ID           int64  `db:"id" json:"id"`
	Language     string `db:"language" json:"language"`
	BannerText   string `db:"banner_text" json:"banner_text"`
	AcceptLabel  string `db:"accept_label" json:"accept_label"`
	DeclineLabel string `db:"decline_label" json:"decline_label"`
	PolicyURL    string `db:"policy_url" json:"policy_url"`
	Enabled      bool   `db:"enabled" json:"enabled"`
}

// CookieConfigPayload is the save body.
type CookieConfigPayload struct {
	Language     string `json:"language" validate:"required"`
	BannerText   string `json:"banner_text" validate:"required"`
	AcceptLabel  string `json:"accept_label" validate:"required"`
	DeclineLabel string `json:"decline_label"`
	PolicyURL    string `json:"policy_url" validate:"omitempty,uri"`
	Enabled      bool   `json:"enabled"`
}

// GetCookieConfig returns the banner config for one language, or nil when
// the tenant has never saved one.
func GetCookieConfig(ctx context.Context, db *sqlx.DB, language string) (*CookieConfig, error) {
	const q = `
        SELECT id, language, banner_text, accept_label, decline_label, policy_url, enabled
        FROM   cookie_settings
        WHERE  language = $1
        LIMIT  1`

	var cfg CookieConfig
	if err := db.GetContext(ctx, &cfg, q, language); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		metrics.QueryErrorsTotal.WithLabelValues("cookie_settings").Inc()
		return nil, fmt.Errorf("get cookie settings: %w", err)
	}
	return &cfg, nil
}

// SaveCookieConfig upserts the banner config for the payload's language.
func SaveCookieConfig(ctx context.Context, db *sqlx.DB, p CookieConfigPayload) error {
	const q = `
        INSERT INTO cookie_settings (language, banner_text, accept_label,
               decline_label, policy_url, enabled)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (language) DO UPDATE
        SET    banner_text = EXCLUDED.banner_text,
               accept_label = EXCLUDED.accept_label,
               decline_label = EXCLUDED.decline_label,
               policy_url = EXCLUDED.policy_url,
               enabled = EXCLUDED.enabled,
               updated_at = CURRENT_TIMESTAMP`

	if _, err := db.ExecContext(ctx, q, p.Language, p.BannerText, p.AcceptLabel,
		p.DeclineLabel, p.PolicyURL, p.Enabled); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("cookie_settings").Inc()
		return fmt.Errorf("save cookie settings: %w", err)
	}
	return nil
}
