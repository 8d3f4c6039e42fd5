package content

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/siteforge/console/internal/metrics"
)

// ThemeSetting is one key-value pair of the tenant `theme_settings`
// table: colors, fonts, logo URLs, and similar styling knobs the theme
// panel edits.
type ThemeSetting struct {
	Key   string `db:"key" json:"key"`
	Value string `db:"value" json:"value"`
}

// ThemeSettings returns the whole styling map.
func ThemeSettings(ctx context.Context, db *sqlx.DB) (map[string]string, error) {
	const q = `SELECT key, value FROM theme_settings`

	var rows []ThemeSetting
	if err := db.SelectContext(ctx, &rows, q); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("theme_settings").Inc()
		return nil, fmt.Errorf("list theme settings: %w", err)
	}

	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Value
	}
	return out, nil
}

// SaveThemeSetting upserts one styling key.
func SaveThemeSetting(ctx context.Context, db *sqlx.DB, key, value string) error {
	if key == "" {
		return fmt.Errorf("theme setting key must be non-empty")
	}

	const q = `
        INSERT INTO theme_settings (key, value)
        VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE
        SET    value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP`

	if _, err := db.ExecContext(ctx, q, key, value); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("theme_settings").Inc()
		return fmt.Errorf("save theme setting %q: %w", key, err)
	}
	return nil
}

// DeleteThemeSetting drops one styling key, reverting the theme default.
func DeleteThemeSetting(ctx context.Context, db *sqlx.DB, key string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM theme_settings WHERE key = $1`, key); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("theme_settings").Inc()
		return fmt.Errorf("delete theme setting %q: %w", key, err)
	}
	return nil
}
