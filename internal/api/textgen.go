// internal/api/textgen.go
//
// Draft-text generation pass-through.  The editor sends a prompt, the
// external service answers with plain text, and the console never stores
// either side of the exchange.
package api

import (
	"net/http"

	"github.com/siteforge/console/internal/content"
)

type generatePayload struct {
	Prompt string `json:"prompt" validate:"required"`
}

func (s *Server) handleGenerateText(w http.ResponseWriter, r *http.Request) {
	if s.textgen == nil {
		fail(w, http.StatusNotImplemented, "Text generation is not configured", nil)
		return
	}

	var p generatePayload
	if err := decode(r, &p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to generate text", err)
		return
	}
	if err := content.Validate(p); err != nil {
		fail(w, http.StatusBadRequest, "Failed to generate text", err)
		return
	}

	text, err := s.textgen.Generate(r.Context(), p.Prompt)
	if err != nil {
		fail(w, http.StatusBadGateway, "Failed to generate text", err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"text": text})
}
