package http

import (
	"net/http"
	"time"

	"github.com/codelane/identity/pkg/httpx"
)

// LivezHandler is the liveness probe. It returns 200 whenever the process is
// able to serve requests.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
