package handlers

import (
	"net/http"
	"time"

	"github.com/upb/llm-dispatch/providers"
	"github.com/upb/llm-dispatch/utils"
)

// HealthResponse reports gateway liveness and registered providers.
type HealthResponse struct {
	Status    string   `json:"status"`
	Timestamp string   `json:"timestamp"`
	Providers []string `json:"providers"`
}

// HealthHandler handles health check requests
type HealthHandler struct {
	registry *providers.Registry
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(registry *providers.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// HandleHealth handles GET /healthz
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Providers: h.registry.Prefixes(),
	}
	_ = utils.WriteJSON(w, http.StatusOK, response)
}
