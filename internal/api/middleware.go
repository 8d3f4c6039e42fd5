// internal/api/middleware.go
//
// Tenant-resolution middleware.
//
// Context
// -------
// Every tenant-scoped route hangs under /{tenant}/…, where {tenant} is
// the registry username.  The middleware resolves it through the tenant
// cache and stores the aggregate in the request context.  An unknown or
// inactive username answers 404 with the connection-error message the
// dashboard banner expects; resolution failures are never retried.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/siteforge/console/internal/tenant"
)

type tenantCtxKey struct{}

// TenantCtx resolves the {tenant} path segment into a *tenant.Tenant.
func (s *Server) TenantCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "tenant")
		if username == "" {
			fail(w, http.StatusNotFound, "Unable to connect to site database", nil)
			return
		}

		ten, err := s.tenants.Get(r.Context(), username)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, tenant.ErrNotFound) {
				status = http.StatusNotFound
			}
			fail(w, status, "Unable to connect to site database", err)
			return
		}

		ctx := context.WithValue(r.Context(), tenantCtxKey{}, ten)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tenantFrom returns the Tenant stored by TenantCtx.  Panics if the
// middleware did not run; routes are wired so it always has.
func tenantFrom(ctx context.Context) *tenant.Tenant {
	return ctx.Value(tenantCtxKey{}).(*tenant.Tenant)
}
