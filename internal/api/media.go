// internal/api/media.go
//
// Image upload/delete pass-through to the external store.  The console
// generates the storage filename; the editor embeds the returned URL in
// article sections and author portraits.
package api

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/siteforge/console/internal/media"
)

// maxUploadBytes caps one image upload.
const maxUploadBytes = 10 << 20

func (s *Server) handleUploadMedia(w http.ResponseWriter, r *http.Request) {
	if s.media == nil {
		fail(w, http.StatusNotImplemented, "Image store is not configured", nil)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		fail(w, http.StatusBadRequest, "Failed to upload image", err)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		fail(w, http.StatusBadRequest, "Failed to upload image", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		fail(w, http.StatusBadRequest, "Failed to upload image", err)
		return
	}

	name := media.Filename(header.Filename)
	url, err := s.media.Upload(r.Context(), name, data, header.Header.Get("Content-Type"))
	if err != nil {
		fail(w, http.StatusBadGateway, "Failed to upload image", err)
		return
	}
	respond(w, http.StatusCreated, map[string]string{"filename": name, "url": url})
}

func (s *Server) handleDeleteMedia(w http.ResponseWriter, r *http.Request) {
	if s.media == nil {
		fail(w, http.StatusNotImplemented, "Image store is not configured", nil)
		return
	}

	name := chi.URLParam(r, "filename")
	if err := s.media.Delete(r.Context(), name); err != nil {
		fail(w, http.StatusBadGateway, "Failed to delete image", err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}
