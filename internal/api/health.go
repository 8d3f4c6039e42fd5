package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/siteforge/console/internal/requestinfo"
)

type healthBody struct {
	Connected bool `json:"connected"`
}

// handleHealth pings the master control-plane database.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.masterDB.PingContext(r.Context()); err != nil {
		fail(w, http.StatusServiceUnavailable, "Unable to connect to site database", err)
		return
	}
	respond(w, http.StatusOK, healthBody{Connected: true})
}

// handleTenantHealth runs the SELECT 1 probe against the tenant database.
// The probe goes through the connection cache so a freshly invalidated
// handle is reopened here rather than on an editor's save.
func (s *Server) handleTenantHealth(w http.ResponseWriter, r *http.Request) {
	ten := tenantFrom(r.Context())

	ok, err := s.tenants.Conns().TestConnection(r.Context(), ten.ConnectionString)
	if err != nil || !ok {
		fail(w, http.StatusServiceUnavailable, "Unable to connect to site database", err)
		return
	}

	if info := requestinfo.FromContext(r.Context()); info != nil {
		zapAccessLog(ten.Username, info)
	}
	respond(w, http.StatusOK, healthBody{Connected: true})
}

// zapAccessLog records who probed which tenant from where.
func zapAccessLog(username string, info *requestinfo.RequestInfo) {
	zap.S().Infow("tenant health probe",
		"tenant", username,
		"ip", info.Geo.IP,
		"country", info.Geo.CountryISO,
		"browser", info.UA.Browser,
	)
}
