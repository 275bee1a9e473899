package api

import (
	"os"
	"strings"

	"bet-dashboard/internal/animation"
	"bet-dashboard/internal/api/handlers"
	"bet-dashboard/internal/api/middleware"
	"bet-dashboard/internal/api/models"
	"bet-dashboard/internal/logging"

	"github.com/gin-gonic/gin"
)

// Deps is everything the router needs to serve requests.
type Deps struct {
	Store       *handlers.Store
	Simulator   models.SimulatorDefaults
	Limits      handlers.FilterLimits
	ExportPath  string
	Animation   animation.Fetcher
	CORSOrigins []string
	// StaticDir is served for non-API routes when it exists.
	StaticDir string
}

// Handlers exposes the constructed handlers, mostly for tests.
type Handlers struct {
	Meta      *handlers.MetaHandler
	Today     *handlers.TodayHandler
	Analytics *handlers.AnalyticsHandler
	Export    *handlers.ExportHandler
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(d Deps) (*gin.Engine, *Handlers) {
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(d.CORSOrigins...))
	router.Use(middleware.Logger())

	analyticsHandler := handlers.NewAnalyticsHandler(d.Store, d.Limits)
	h := &Handlers{
		Meta:      handlers.NewMetaHandler(d.Store),
		Today:     handlers.NewTodayHandler(d.Store, d.Simulator, d.Animation),
		Analytics: analyticsHandler,
		Export:    handlers.NewExportHandler(analyticsHandler, d.ExportPath),
	}

	router.GET("/health", h.Meta.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/bet-types", h.Meta.ListBetTypes)

		api.GET("/today", h.Today.GetToday)
		api.POST("/simulate", h.Today.Simulate)

		api.GET("/analytics", h.Analytics.GetAnalytics)
		api.GET("/analytics/breakdown", h.Analytics.GetBreakdown)

		api.POST("/export", h.Export.Export)
		api.GET("/export.csv", h.Export.Download)
	}

	serveStatic(router, d.StaticDir)
	return router, h
}

func serveStatic(router *gin.Engine, staticDir string) {
	log := logging.For("api")
	notFound := func(c *gin.Context) {
		c.JSON(404, models.ErrorResponse{Error: models.ErrorDetail{Code: "NOT_FOUND", Message: "Not found"}})
	}

	if staticDir == "" {
		router.NoRoute(notFound)
		return
	}
	if _, err := os.Stat(staticDir); err != nil {
		log.Infof("Static directory %s not found, skipping static file serving", staticDir)
		router.NoRoute(notFound)
		return
	}

	router.Static("/assets", staticDir+"/assets")
	router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")
	// Serve index.html for all non-API routes (SPA routing)
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			notFound(c)
			return
		}
		c.File(staticDir + "/index.html")
	})
	log.Infof("Serving static files from %s", staticDir)
}
