package http

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"complaints-service/internal/dataset"
	"complaints-service/internal/pivot"
	"complaints-service/internal/service"
)

// Handler serves the reports API. Report endpoints keep the original route
// spelling (including "agging") so existing dashboard clients keep working,
// and return the bare JSON array of row records the clients expect.
type Handler struct {
	reports   *service.ReportService
	uploadDir string
	log       zerolog.Logger
}

func NewHandler(reports *service.ReportService, uploadDir string, log zerolog.Logger) *Handler {
	return &Handler{reports: reports, uploadDir: uploadDir, log: log}
}

func (h *Handler) Register(r *gin.Engine) {
	r.GET("/", h.root)
	r.GET("/healthcheck", h.healthcheck)

	r.GET("/open_complaint_pivot", h.report(h.reports.OpenComplaintPivot))
	r.GET("/open_close_complaint_pivot", h.report(h.reports.OpenCloseComplaintPivot))
	r.GET("/agging_open_pivot_dict", h.report(h.reports.AgingOpenPivot))
	r.GET("/agging_open_close_pivot_dict", h.report(h.reports.AgingOpenClosePivot))
	r.GET("/generate_all_agging_complaint_report", h.report(h.reports.AllAgingComplaintReport))
	r.GET("/open_close_complaint_report", h.report(h.reports.OpenCloseComplaintReport))

	r.POST("/dataset/upload", h.uploadDataset)
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Complaint Analysis API",
		"status":  "running",
		"version": "1.0.0",
		"endpoints": gin.H{
			"healthcheck": "/healthcheck",
			"reports": []string{
				"/open_complaint_pivot",
				"/open_close_complaint_pivot",
				"/agging_open_pivot_dict",
				"/agging_open_close_pivot_dict",
				"/generate_all_agging_complaint_report",
				"/open_close_complaint_report",
			},
		},
	})
}

func (h *Handler) healthcheck(c *gin.Context) {
	c.JSON(http.StatusOK, h.reports.Health())
}

func (h *Handler) report(fn func(context.Context) ([]pivot.Record, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := fn(c.Request.Context())
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, records)
	}
}

func (h *Handler) uploadDataset(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("missing upload file"))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".csv" && ext != ".xlsx" {
		c.JSON(http.StatusBadRequest, errorResponse("unsupported file type, expected .csv or .xlsx"))
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.log.Error().Err(err).Msg("create upload dir")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
		return
	}

	// Each upload replaces the previous dataset.
	entries, err := os.ReadDir(h.uploadDir)
	if err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			stale := filepath.Join(h.uploadDir, entry.Name())
			if err := os.Remove(stale); err != nil {
				h.log.Error().Err(err).Str("path", stale).Msg("remove previous dataset")
			} else {
				h.log.Info().Str("path", stale).Msg("removed previous dataset")
			}
		}
	}

	target := filepath.Join(h.uploadDir, filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, target); err != nil {
		h.log.Error().Err(err).Str("path", target).Msg("save uploaded dataset")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
		return
	}

	h.reports.Invalidate()
	h.log.Info().Str("path", target).Msg("dataset uploaded")

	c.JSON(http.StatusOK, gin.H{"saved": target})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch dataset.KindOf(err) {
	case dataset.KindDataSource:
		c.JSON(http.StatusServiceUnavailable, errorResponse(err.Error()))
	case dataset.KindSchema, dataset.KindParse:
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}
