package api

import (
	"encoding/json"
	"net/http"
	"time"
)

// handleHealth handles GET /api/health, the liveness probe.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "healthy",
		"service":   "warehouse-api",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
