// internal/api/master.go
//
// Master-operator endpoints: the admins registry, the fleet tables, and
// the cache snapshot view.  All of them hit the master database directly;
// none go through tenant resolution.
package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/siteforge/console/internal/content"
	"github.com/siteforge/console/internal/registry"
)

// idParam parses the {id} route segment.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

//
// admins
//

type adminPayload struct {
	Username         string `json:"username" validate:"required"`
	ConnectionString string `json:"connection_string" validate:"required"`
	Status           string `json:"status" validate:"required,oneof=active inactive"`
}

func (s *Server) handleListAdmins(w http.ResponseWriter, r *http.Request) {
	rows, err := registry.All(r.Context(), s.masterDB)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to load admins", err)
		return
	}
	respond(w, http.StatusOK, rows)
}

func (s *Server) handleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	var p adminPayload
	if err := decode(r, &p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save admin", err)
		return
	}
	if err := content.Validate(p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save admin", err)
		return
	}

	id, err := registry.Insert(r.Context(), s.masterDB, p.Username, p.ConnectionString, p.Status)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to save admin", err)
		return
	}
	respond(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleUpdateAdminStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Failed to save admin", err)
		return
	}

	var p struct {
		Status string `json:"status" validate:"required,oneof=active inactive"`
	}
	if err := decode(r, &p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save admin", err)
		return
	}
	if err := content.Validate(p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save admin", err)
		return
	}

	if err := registry.UpdateStatus(r.Context(), s.masterDB, id, p.Status); err != nil {
		fail(w, http.StatusInternalServerError, "Failed to save admin", err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Failed to delete admin", err)
		return
	}
	if err := registry.Delete(r.Context(), s.masterDB, id); err != nil {
		fail(w, http.StatusInternalServerError, "Failed to delete admin", err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

//
// fleet
//

func (s *Server) handleListSites(w http.ResponseWriter, r *http.Request) {
	rows, err := registry.ListSites(r.Context(), s.masterDB)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to load sites", err)
		return
	}
	respond(w, http.StatusOK, rows)
}

func (s *Server) handleCreateSite(w http.ResponseWriter, r *http.Request) {
	var p registry.SitePayload
	if err := decode(r, &p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save site", err)
		return
	}
	if err := content.Validate(p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save site", err)
		return
	}

	id, err := registry.CreateSite(r.Context(), s.masterDB, p)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to save site", err)
		return
	}
	respond(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleUpdateSite(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Failed to save site", err)
		return
	}

	var p registry.SitePayload
	if err := decode(r, &p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save site", err)
		return
	}
	if err := content.Validate(p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to save site", err)
		return
	}

	if err := registry.UpdateSite(r.Context(), s.masterDB, id, p); err != nil {
		fail(w, http.StatusInternalServerError, "Failed to save site", err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteSite(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Failed to delete site", err)
		return
	}
	if err := registry.DeleteSite(r.Context(), s.masterDB, id); err != nil {
		fail(w, http.StatusInternalServerError, "Failed to delete site", err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleListServers(w http.ResponseWriter, r *http.Request) {
	rows, err := registry.ListServers(r.Context(), s.masterDB)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to load servers", err)
		return
	}
	respond(w, http.StatusOK, rows)
}

func (s *Server) handleListSiteTypes(w http.ResponseWriter, r *http.Request) {
	rows, err := registry.ListSiteTypes(r.Context(), s.masterDB)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to load site types", err)
		return
	}
	respond(w, http.StatusOK, rows)
}

// handleCacheSnapshot shows which tenants are resolved and when they were
// last touched.
func (s *Server) handleCacheSnapshot(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, s.tenants.Snapshot())
}
