// internal/api/router.go
//
// Route table for the admin console.
//
// Layout
// ------
//
//	/healthz                     master DB liveness
//	/metrics                     Prometheus
//	/master/…                    fleet CRUD (admins, sites, servers, types)
//	/{tenant}/healthz            tenant connectivity probe
//	/{tenant}/articles…          and the other per-entity CRUD screens
//
// The tenant subtree is wrapped in TenantCtx so handlers only ever see a
// resolved database handle.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/siteforge/console/internal/media"
	"github.com/siteforge/console/internal/middleware"
	"github.com/siteforge/console/internal/requestinfo"
	"github.com/siteforge/console/internal/tenant"
	"github.com/siteforge/console/internal/textgen"
)

// Server bundles the dependencies the handlers need.
type Server struct {
	masterDB *sqlx.DB
	tenants  *tenant.Cache
	media    *media.Client
	textgen  *textgen.Client
}

// New wires the full route table and returns the root handler.
func New(masterDB *sqlx.DB, tenants *tenant.Cache, mediaClient *media.Client, textgenClient *textgen.Client) http.Handler {
	s := &Server{
		masterDB: masterDB,
		tenants:  tenants,
		media:    mediaClient,
		textgen:  textgenClient,
	}

	r := chi.NewRouter()
	r.Use(middleware.Security)
	r.Use(requestinfo.Enrich)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/master", func(r chi.Router) {
		r.Get("/admins", s.handleListAdmins)
		r.Post("/admins", s.handleCreateAdmin)
		r.Patch("/admins/{id}", s.handleUpdateAdminStatus)
		r.Delete("/admins/{id}", s.handleDeleteAdmin)

		r.Get("/sites", s.handleListSites)
		r.Post("/sites", s.handleCreateSite)
		r.Put("/sites/{id}", s.handleUpdateSite)
		r.Delete("/sites/{id}", s.handleDeleteSite)

		r.Get("/servers", s.handleListServers)
		r.Get("/site-types", s.handleListSiteTypes)
		r.Get("/cache", s.handleCacheSnapshot)
	})

	r.Route("/{tenant}", func(r chi.Router) {
		r.Use(s.TenantCtx)

		r.Get("/healthz", s.handleTenantHealth)

		r.Get("/articles", s.handleListArticles)
		r.Get("/articles/{id}", s.handleGetArticle)
		r.Post("/articles", s.handleCreateArticle)
		r.Put("/articles/{id}", s.handleUpdateArticle)
		r.Delete("/articles/{id}", s.handleDeleteArticle)
		r.Get("/article-types", s.handleListArticleTypes)

		r.Get("/authors", s.handleListAuthors)
		r.Post("/authors", s.handleCreateAuthor)
		r.Put("/authors/{id}", s.handleUpdateAuthor)
		r.Delete("/authors/{id}", s.handleDeleteAuthor)

		r.Get("/categories", s.handleListCategories)
		r.Post("/categories", s.handleCreateCategory)
		r.Put("/categories/{id}", s.handleUpdateCategory)
		r.Delete("/categories/{id}", s.handleDeleteCategory)

		r.Get("/pages", s.handleListPages)
		r.Post("/pages", s.handleCreatePage)
		r.Put("/pages/{id}", s.handleUpdatePage)
		r.Delete("/pages/{id}", s.handleDeletePage)

		r.Get("/cookie-settings", s.handleGetCookieConfig)
		r.Put("/cookie-settings", s.handleSaveCookieConfig)

		r.Get("/social-links", s.handleListSocialLinks)
		r.Post("/social-links", s.handleCreateSocialLink)
		r.Put("/social-links/{id}", s.handleUpdateSocialLink)
		r.Delete("/social-links/{id}", s.handleDeleteSocialLink)

		r.Get("/theme-settings", s.handleThemeSettings)
		r.Put("/theme-settings/{key}", s.handleSaveThemeSetting)
		r.Delete("/theme-settings/{key}", s.handleDeleteThemeSetting)

		r.Get("/tracking-codes", s.handleListTrackingCodes)
		r.Post("/tracking-codes", s.handleCreateTrackingCode)
		r.Put("/tracking-codes/{id}", s.handleUpdateTrackingCode)
		r.Delete("/tracking-codes/{id}", s.handleDeleteTrackingCode)

		r.Post("/reorder", s.handleReorder)

		r.Post("/media", s.handleUploadMedia)
		r.Delete("/media/{filename}", s.handleDeleteMedia)

		r.Post("/generate-text", s.handleGenerateText)
	})

	return r
}
