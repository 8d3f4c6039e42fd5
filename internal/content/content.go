// Package content holds the per-entity CRUD operations the dashboard
// screens call against a tenant database.  Every function takes the
// caller's resolved *sqlx.DB; tenant routing happens upstream.
//
// All entities share the same contract: list everything (optionally
// filtered by language), and single-row create/update/delete.  Failures
// are wrapped with a short operation label and surfaced to the UI as a
// generic banner; nothing here retries.
package content

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks a request payload's struct tags before any SQL runs.
func Validate(payload any) error {
	return validate.Struct(payload)
}
