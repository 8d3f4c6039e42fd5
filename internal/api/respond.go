// internal/api/respond.go
//
// JSON response helpers shared by every handler.
//
// Error bodies carry one human-readable message; the dashboard shows it
// in a banner verbatim.  There are no structured error codes, matching
// the taxonomy the screens actually use: tenant/connection problems get
// a connection-error message, everything else gets a generic
// "Failed to <verb> <entity>".
package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type errorBody struct {
	Error string `json:"error"`
}

// respond writes v as JSON with the given status.  nil v writes no body.
func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Errorw("response encode failed", "err", err)
	}
}

// fail logs the underlying error and writes the user-facing message.
func fail(w http.ResponseWriter, status int, msg string, err error) {
	if err != nil {
		zap.S().Errorw(msg, "err", err)
	}
	respond(w, status, errorBody{Error: msg})
}

// decode parses the request body into dst.
func decode(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
