// internal/api/entities.go
//
// The remaining tenant CRUD screens.  Every handler follows the same
// shape: resolve the tenant handle from the context, decode + validate
// the payload, run one content operation, and answer either the rows or
// the generic banner message.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/siteforge/console/internal/content"
)

//
// authors
//

func (s *Server) handleListAuthors(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	rows, err := content.ListAuthors(r.Context(), ten.DB, r.URL.Query().Get("language"))
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to load authors", err)
		return
	}
	respond(w, http.StatusOK, rows)
}

func (s *Server) handleCreateAuthor(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	var p content.AuthorPayload
	if err := decode(r, &p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save author", err)
		return
	}
	if err := content.Validate(p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save author", err)
		return
	}

	id, err := content.CreateAuthor(r.Context(), ten.DB, p)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to save author", err)
		return
	}
	respond(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleUpdateAuthor(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	id, err := idParam(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Failed to save author", err)
		return
	}

	var p content.AuthorPayload
	if err := decode(r, &p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save author", err)
		return
	}
	if err := content.Validate(p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save author", err)
		return
	}

	if err := content.UpdateAuthor(r.Context(), ten.DB, id, p); err != nil {
		fail(w, http.StatusInternalServerError, "Failed to save author", err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteAuthor(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	id, err := idParam(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Failed to delete author", err)
		return
	}
	if err := content.DeleteAuthor(r.Context(), ten.DB, id); err != nil {
		fail(w, http.StatusInternalServerError, "Failed to delete author", err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

//
// categories
//

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	rows, err := content.ListCategories(r.Context(), ten.DB, r.URL.Query().Get("language"))
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to load categories", err)
		return
	}
	respond(w, http.StatusOK, rows)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	var p content.CategoryPayload
	if err := decode(r, &p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save category", err)
		return
	}
	if err := content.Validate(p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save category", err)
		return
	}

	id, err := content.CreateCategory(r.Context(), ten.DB, p)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to save category", err)
		return
	}
	respond(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	id, err := idParam(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Failed to save category", err)
		return
	}

	var p content.CategoryPayload
	if err := decode(r, &p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save category", err)
		return
	}
	if err := content.Validate(p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save category", err)
		return
	}

	if err := content.UpdateCategory(r.Context(), ten.DB, id, p); err != nil {
		fail(w, http.StatusInternalServerError, "Failed to save category", err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	id, err := idParam(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Failed to delete category", err)
		return
	}
	if err := content.DeleteCategory(r.Context(), ten.DB, id); err != nil {
		fail(w, http.StatusInternalServerError, "Failed to delete category", err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

//
// pages
//

func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	rows, err := content.ListPages(r.Context(), ten.DB, r.URL.Query().Get("language"))
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to load pages", err)
		return
	}
	respond(w, http.StatusOK, rows)
}

func (s *Server) handleCreatePage(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	var p content.PagePayload
	if err := decode(r, &p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save page", err)
		return
	}
	if err := content.Validate(p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save page", err)
		return
	}

	id, err := content.CreatePage(r.Context(), ten.DB, p)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to save page", err)
		return
	}
	respond(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleUpdatePage(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	id, err := idParam(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Failed to save page", err)
		return
	}

	var p content.PagePayload
	if err := decode(r, &p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save page", err)
		return
	}
	if err := content.Validate(p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save page", err)
		return
	}

	if err := content.UpdatePage(r.Context(), ten.DB, id, p); err != nil {
		fail(w, http.StatusInternalServerError, "Failed to save page", err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeletePage(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	id, err := idParam(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Failed to delete page", err)
		return
	}
	if err := content.DeletePage(r.Context(), ten.DB, id); err != nil {
		fail(w, http.StatusInternalServerError, "Failed to delete page", err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

//
// cookie settings
//

func (s *Server) handleGetCookieConfig(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	cfg, err := content.GetCookieConfig(r.Context(), ten.DB, r.URL.Query().Get("language"))
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to load cookie settings", err)
		return
	}
	respond(w, http.StatusOK, cfg)
}

func (s *Server) handleSaveCookieConfig(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	var p content.CookieConfigPayload
	if err := decode(r, &p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save cookie settings", err)
		return
	}
	if err := content.Validate(p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save cookie settings", err)
		return
	}

	if err := content.SaveCookieConfig(r.Context(), ten.DB, p); err != nil {
		fail(w, http.StatusInternalServerError, "Failed to save cookie settings", err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

//
// social links
//

func (s *Server) handleListSocialLinks(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	rows, err := content.ListSocialLinks(r.Context(), ten.DB)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to load social links", err)
		return
	}
	respond(w, http.StatusOK, rows)
}

func (s *Server) handleCreateSocialLink(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	var p content.SocialLinkPayload
	if err := decode(r, &p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save social link", err)
		return
	}
	if err := content.Validate(p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save social link", err)
		return
	}

	id, err := content.CreateSocialLink(r.Context(), ten.DB, p)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to save social link", err)
		return
	}
	respond(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleUpdateSocialLink(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	id, err := idParam(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Failed to save social link", err)
		return
	}

	var p content.SocialLinkPayload
	if err := decode(r, &p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save social link", err)
		return
	}
	if err := content.Validate(p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save social link", err)
		return
	}

	if err := content.UpdateSocialLink(r.Context(), ten.DB, id, p); err != nil {
		fail(w, http.StatusInternalServerError, "Failed to save social link", err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteSocialLink(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	id, err := idParam(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Failed to delete social link", err)
		return
	}
	if err := content.DeleteSocialLink(r.Context(), ten.DB, id); err != nil {
		fail(w, http.StatusInternalServerError, "Failed to delete social link", err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

//
// theme settings
//

func (s *Server) handleThemeSettings(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	settings, err := content.ThemeSettings(r.Context(), ten.DB)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to load theme settings", err)
		return
	}
	respond(w, http.StatusOK, settings)
}

func (s *Server) handleSaveThemeSetting(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	var p struct {
		Value string `json:"value"`
	}
	if err := decode(r, &p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save theme setting", err)
		return
	}

	key := chi.URLParam(r, "key")
	if err := content.SaveThemeSetting(r.Context(), ten.DB, key, p.Value); err != nil {
		fail(w, http.StatusInternalServerError, "Failed to save theme setting", err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteThemeSetting(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	key := chi.URLParam(r, "key")
	if err := content.DeleteThemeSetting(r.Context(), ten.DB, key); err != nil {
		fail(w, http.StatusInternalServerError, "Failed to delete theme setting", err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

//
// tracking codes
//

func (s *Server) handleListTrackingCodes(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	rows, err := content.ListTrackingCodes(r.Context(), ten.DB)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to load tracking codes", err)
		return
	}
	respond(w, http.StatusOK, rows)
}

func (s *Server) handleCreateTrackingCode(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	var p content.TrackingCodePayload
	if err := decode(r, &p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save tracking code", err)
		return
	}
	if err := content.Validate(p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save tracking code", err)
		return
	}

	id, err := content.CreateTrackingCode(r.Context(), ten.DB, p)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to save tracking code", err)
		return
	}
	respond(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleUpdateTrackingCode(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	id, err := idParam(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Failed to save tracking code", err)
		return
	}

	var p content.TrackingCodePayload
	if err := decode(r, &p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save tracking code", err)
		return
	}
	if err := content.Validate(p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save tracking code", err)
		return
	}

	if err := content.UpdateTrackingCode(r.Context(), ten.DB, id, p); err != nil {
		fail(w, http.StatusInternalServerError, "Failed to save tracking code", err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteTrackingCode(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	id, err := idParam(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Failed to delete tracking code", err)
		return
	}
	if err := content.DeleteTrackingCode(r.Context(), ten.DB, id); err != nil {
		fail(w, http.StatusInternalServerError, "Failed to delete tracking code", err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

//
// reorder
//

// handleReorder persists one drag-and-drop move.  The client computes the
// new order with the fractional-index helpers and sends the result.
func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	var p struct {
		Table        string `json:"table" validate:"required"`
		ID           int64  `json:"id" validate:"required"`
		DisplayOrder int    `json:"display_order"`
	}
	if err := decode(r, &p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to reorder", err)
		return
	}
	if err := content.Validate(p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to reorder", err)
		return
	}

	if err := content.Reorder(r.Context(), ten.DB, p.Table, p.ID, p.DisplayOrder); err != nil {
		fail(w, http.StatusInternalServerError, "Failed to reorder", err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}
