package handlers

import (
	"net/http"

	"bet-dashboard/internal/analysis"
	"bet-dashboard/internal/api/models"
	"bet-dashboard/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AnalyticsHandler serves the filterable analytics panel
type AnalyticsHandler struct {
	store  *Store
	limits FilterLimits
	log    *logrus.Entry
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(store *Store, limits FilterLimits) *AnalyticsHandler {
	return &AnalyticsHandler{
		store:  store,
		limits: limits,
		log:    logging.For("analytics"),
	}
}

// criteria binds the shared filter query. It writes the error response itself.
func (h *AnalyticsHandler) criteria(c *gin.Context) (analysis.Criteria, models.CriteriaInfo, bool) {
	var req models.AnalyticsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return analysis.Criteria{}, models.CriteriaInfo{}, false
	}
	return buildCriteria(c, req.BetType, req.StartDate, req.EndDate, req.MinEV, h.limits, h.store.Location())
}

// GetAnalytics handles GET /api/v1/analytics
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	criteria, info, ok := h.criteria(c)
	if !ok {
		return
	}
	engine, ok := h.store.Engine(c)
	if !ok {
		return
	}

	rep, err := engine.Report(c.Request.Context(), criteria)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "REPORT_FAILED",
				Message: err.Error(),
			},
		})
		return
	}
	view := analysis.SortChronological(engine.Filter(criteria), true)

	h.log.WithFields(logrus.Fields{"criteria": criteria.Key(), "count": rep.Count}).Debug("analytics served")
	c.JSON(http.StatusOK, models.AnalyticsResponse{
		Criteria: info,
		Report:   toReport(rep),
		Records:  toRecords(view),
	})
}

// GetBreakdown handles GET /api/v1/analytics/breakdown
func (h *AnalyticsHandler) GetBreakdown(c *gin.Context) {
	var req models.BreakdownRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	criteria, info, ok := buildCriteria(c, "", req.StartDate, req.EndDate, req.MinEV, h.limits, h.store.Location())
	if !ok {
		return
	}
	engine, ok := h.store.Engine(c)
	if !ok {
		return
	}

	ranked, err := engine.Breakdown(c.Request.Context(), criteria)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "REPORT_FAILED",
				Message: err.Error(),
			},
		})
		return
	}

	rankings := make([]models.TypeRanking, len(ranked))
	for i, tr := range ranked {
		rankings[i] = models.TypeRanking{
			Rank:    i + 1,
			BetType: tr.BetType,
			Report:  toReport(tr.Report),
		}
	}
	c.JSON(http.StatusOK, models.BreakdownResponse{Criteria: info, Rankings: rankings})
}
