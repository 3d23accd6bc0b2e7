package http

import (
	"net/http"
	"time"

	"github.com/codelane/identity/internal/identity/store"
	"github.com/codelane/identity/pkg/httpx"
)

// ReadyzHandler is the readiness probe. It reports 503 while any critical
// dependency is unavailable so load balancers stop routing traffic here.
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &HealthChecks{Database: "ok"}
		status := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
