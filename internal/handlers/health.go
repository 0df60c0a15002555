package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kartik7022/FlowEngine/internal/database"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db *database.Connection
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.Connection) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string                    `json:"status"`
	Service   string                    `json:"service"`
	Timestamp time.Time                 `json:"timestamp"`
	Database  *database.ConnectionStats `json:"database,omitempty"`
}

// HandleHealthCheck handles the main health check endpoint
func (h *HealthHandler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Service:   "flowengine-registry",
		Timestamp: time.Now(),
	}

	stats, err := h.db.GetConnectionStats()
	if err != nil {
		response.Status = "unhealthy"
	} else {
		response.Database = stats
	}

	w.Header().Set("Content-Type", "application/json")
	if response.Status != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(response)
}

// HandleRoot handles the root service banner
func (h *HealthHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"service": "flowengine-registry",
		"status":  "running",
	})
}
