package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hmcts/et-multiples-api/api"
	"github.com/hmcts/et-multiples-api/config"
)

// MetricsHandler exported for testing purposes
type MetricsHandler struct{}

// GetMetricsSummary returns overall request metrics plus per-route aggregates
func (m MetricsHandler) GetMetricsSummary(w http.ResponseWriter, r *http.Request) {
	collector := api.GetMetrics()

	payload := map[string]interface{}{
		"summary": collector.GetSummary(),
		"routes":  collector.GetRouteMetrics(),
	}

	b, err := json.Marshal(payload)
	if err != nil {
		config.ErrorStatus("failed to marshal metrics", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
