package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"mergington-api/internal/container"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	container *container.Container
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(container *container.Container) *HealthHandler {
	return &HealthHandler{
		container: container,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Cache     string    `json:"cache"`
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	cache := "disabled"
	if h.container.HasRedis() {
		cache = "ok"
		if err := h.container.GetRedisClient().Health(r.Context()); err != nil {
			logger.WithError(err).Warn("Redis health check failed")
			cache = "unavailable"
		}
	}

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   "mergington-api",
		Cache:     cache,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.WithError(err).Error("Failed to encode health check response")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
