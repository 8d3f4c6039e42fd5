// internal/server/server.go
//
// HTTP server helper with robust timeouts.
//
// The editors' save requests finish in well under a second; generous
// write timeouts only mask a wedged tenant database.  Centralised here so
// cmd/console doesn't repeat boilerplate.
package server

import (
	"net/http"
	"time"
)

// New constructs an *http.Server with sensible defaults.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
