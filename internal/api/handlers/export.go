package handlers

import (
	"fmt"
	"net/http"

	"bet-dashboard/internal/api/models"
	"bet-dashboard/internal/export"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ExportSuccessMessage confirms a written export.
const ExportSuccessMessage = "CSV exportado com sucesso!"

// ExportHandler writes the filtered view as CSV
type ExportHandler struct {
	analytics *AnalyticsHandler
	path      string
}

// NewExportHandler creates a new export handler that writes to path
func NewExportHandler(analytics *AnalyticsHandler, path string) *ExportHandler {
	if path == "" {
		path = export.DefaultPath
	}
	return &ExportHandler{analytics: analytics, path: path}
}

// Export handles POST /api/v1/export
func (h *ExportHandler) Export(c *gin.Context) {
	criteria, _, ok := h.analytics.criteria(c)
	if !ok {
		return
	}
	engine, ok := h.analytics.store.Engine(c)
	if !ok {
		return
	}

	view := engine.Filter(criteria)
	id := uuid.New().String()
	log := h.analytics.log.WithFields(logrus.Fields{"export_id": id, "path": h.path, "rows": len(view)})

	if err := export.WriteRecordsCSV(h.path, view); err != nil {
		log.WithError(err).Error("export failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "EXPORT_FAILED",
				Message: err.Error(),
				Details: map[string]interface{}{"path": h.path},
			},
		})
		return
	}
	log.Info("export written")

	c.JSON(http.StatusOK, models.ExportResponse{
		ID:      id,
		Path:    h.path,
		Rows:    len(view),
		Message: ExportSuccessMessage,
	})
}

// Download handles GET /api/v1/export.csv, streaming the same file contents.
func (h *ExportHandler) Download(c *gin.Context) {
	criteria, _, ok := h.analytics.criteria(c)
	if !ok {
		return
	}
	engine, ok := h.analytics.store.Engine(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.DefaultPath))
	c.Status(http.StatusOK)
	if err := export.WriteRecords(c.Writer, engine.Filter(criteria)); err != nil {
		h.analytics.log.WithError(err).Warn("csv download interrupted")
	}
}
