package handlers

import (
	"net/http"

	"bet-dashboard/internal/api/models"

	"github.com/gin-gonic/gin"
)

// MetaHandler serves health and lookup endpoints
type MetaHandler struct {
	store *Store
}

// NewMetaHandler creates a new meta handler
func NewMetaHandler(store *Store) *MetaHandler {
	return &MetaHandler{store: store}
}

// Health handles GET /health. It stays 200 when the dataset is missing so the
// process is not restarted for a data problem.
func (h *MetaHandler) Health(c *gin.Context) {
	body := gin.H{"status": "ok", "data_loaded": h.store.Ready()}
	if h.store.Ready() {
		ds := h.store.engine.Dataset()
		body["records"] = ds.Len()
		body["source"] = ds.Source
		body["fingerprint"] = ds.Fingerprint
	} else if h.store.loadErr != nil {
		body["data_error"] = h.store.loadErr.Error()
	}
	c.JSON(http.StatusOK, body)
}

// ListBetTypes handles GET /api/v1/bet-types
func (h *MetaHandler) ListBetTypes(c *gin.Context) {
	engine, ok := h.store.Engine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.BetTypesResponse{BetTypes: engine.BetTypes()})
}
