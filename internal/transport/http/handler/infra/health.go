package infra

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mandalnilabja/pagesmith/internal/version"
)

// RootStatus returns JSON status and version information at /.
func (h *Handlers) RootStatus(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"name":       "pagesmith",
		"version":    version.Version,
		"status":     "running",
		"generate":   "POST /generate",
		"usage_log":  h.Storage != nil,
		"uptime_sec": int64(time.Since(h.StartTime).Seconds()),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HealthCheck handler returns the application health status.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status": "active",
		"app":    "pagesmith",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
