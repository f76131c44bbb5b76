package handlers

import (
	"net/http"
)

// FleetStatus reports whether the reference data is still loading.
type FleetStatus interface {
	Loading() bool
}

// Health answers liveness probes.
func Health(fleet FleetStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":        "ok",
			"fleet_loading": fleet.Loading(),
		})
	}
}
