package handler

import (
	"context"
	"runtime"
	"time"

	apperp "github.com/erp/bcadapter/internal/application/erp"
	"github.com/gin-gonic/gin"
)

// DirectoryChecker loads the company's code tables
type DirectoryChecker interface {
	Check(ctx context.Context) (*apperp.DirectoryReport, error)
}

// SystemHandler handles health and diagnostics endpoints
type SystemHandler struct {
	BaseHandler
	version   string
	directory DirectoryChecker
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(version string, directory DirectoryChecker) *SystemHandler {
	return &SystemHandler{
		version:   version,
		directory: directory,
		startTime: time.Now(),
	}
}

// HealthResponse is the liveness answer
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version,omitempty"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
	Time      string `json:"time"`
}

// Health answers GET /health. It does not call Business Central.
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Time:      time.Now().Format(time.RFC3339),
	})
}

// Directory answers GET /directory with the code tables of the company
// and the configured codes missing from them.
func (h *SystemHandler) Directory(c *gin.Context) {
	report, err := h.directory.Check(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}
