package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker    func() bool
	queueHealthChecker func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Queue     string `json:"queue"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(dbHealthChecker, queueHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		queueHealthChecker: queueHealthChecker,
	}
}

// Check handles GET /health requests.
// It returns the current health status of the API and its dependencies.
func (h *HealthController) Check(c *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		Database:  "disconnected",
		Queue:     "disconnected",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if h.dbHealthChecker != nil && h.dbHealthChecker() {
		response.Database = "connected"
	}
	if h.queueHealthChecker != nil && h.queueHealthChecker() {
		response.Queue = "connected"
	}
	if response.Database != "connected" || response.Queue != "connected" {
		response.Status = "degraded"
	}

	c.JSON(http.StatusOK, response)
}
