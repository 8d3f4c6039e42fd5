// internal/api/articles.go
//
// Article screens: the aggregated listing, the single-article editor
// fetch, and the save/delete flow.  Save is not transactional across the
// parent row and its children; a partial failure answers 500 with the
// generic banner message while whatever already committed stays put.
package api

import (
	"errors"
	"net/http"

	"github.com/siteforge/console/internal/content"
	"github.com/siteforge/console/internal/content/article"
)

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	articles, err := article.List(r.Context(), ten.DB, r.URL.Query().Get("language"))
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to load articles", err)
		return
	}
	respond(w, http.StatusOK, articles)
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	id, err := idParam(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Failed to load article", err)
		return
	}

	a, err := article.Get(r.Context(), ten.DB, id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, article.ErrNoArticle) {
			status = http.StatusNotFound
		}
		fail(w, status, "Failed to load article", err)
		return
	}
	respond(w, http.StatusOK, a)
}

func (s *Server) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	var p article.Payload
	if err := decode(r, &p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save article", err)
		return
	}
	if err := content.Validate(p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save article", err)
		return
	}

	id, err := article.Create(r.Context(), ten.DB, p)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to save article", err)
		return
	}
	respond(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleUpdateArticle(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	id, err := idParam(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Failed to save article", err)
		return
	}

	var p article.Payload
	if err := decode(r, &p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save article", err)
		return
	}
	if err := content.Validate(p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save article", err)
		return
	}

	if err := article.Update(r.Context(), ten.DB, id, p); err != nil {
		fail(w, http.StatusInternalServerError, "Failed to save article", err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	id, err := idParam(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Failed to delete article", err)
		return
	}
	if err := article.Delete(r.Context(), ten.DB, id); err != nil {
		fail(w, http.StatusInternalServerError, "Failed to delete article", err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleListArticleTypes(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	rows, err := content.ListArticleTypes(r.Context(), ten.DB)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to load article types", err)
		return
	}
	respond(w, http.StatusOK, rows)
}
