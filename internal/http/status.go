package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"complaints-service/internal/service"
)

// StatusHandler serves the companion status API, the second backend process
// of the original deployment.
type StatusHandler struct {
	reports *service.ReportService
	log     zerolog.Logger
}

func NewStatusHandler(reports *service.ReportService, log zerolog.Logger) *StatusHandler {
	return &StatusHandler{reports: reports, log: log}
}

func (h *StatusHandler) Register(r *gin.Engine) {
	r.GET("/", h.root)
	r.GET("/healthcheck", h.healthcheck)
}

func (h *StatusHandler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Complaint Analysis API",
		"version": "1.0.0",
	})
}

func (h *StatusHandler) healthcheck(c *gin.Context) {
	health := h.reports.Health()
	c.JSON(http.StatusOK, gin.H{"status": health.Status})
}
