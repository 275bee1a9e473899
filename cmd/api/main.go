package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bet-dashboard/internal/api"
	"bet-dashboard/internal/api/handlers"
	"bet-dashboard/internal/api/models"
	"bet-dashboard/internal/app"
	"bet-dashboard/internal/config"
	"bet-dashboard/internal/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("CONFIG_PATH"), "Path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	logging.Setup(cfg.Server.Env, cfg.Server.LogLevel)
	log := logging.For("main")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	loc, _ := cfg.Location()

	reportCache, closeCache, err := app.OpenCache(ctx, cfg)
	if err != nil {
		log.WithError(err).Warn("report cache unavailable, continuing without it")
	}
	defer closeCache()

	// A missing or broken dataset does not stop the server; data endpoints
	// report the problem instead.
	var store *handlers.Store
	ds, err := app.LoadDataset(ctx, cfg)
	if err != nil {
		log.WithError(err).Warn(handlers.NoHistoryMessage)
		store = handlers.NewFailedStore(err, loc)
	} else {
		store = handlers.NewStore(app.NewEngine(cfg, ds, reportCache), loc)
	}

	var origins []string
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins = strings.Split(v, ",")
	}

	router, _ := api.NewRouter(api.Deps{
		Store: store,
		Simulator: models.SimulatorDefaults{
			DefaultStake: cfg.Simulator.DefaultStake,
			MinStake:     cfg.Simulator.MinStake,
			Step:         cfg.Simulator.Step,
		},
		Limits: handlers.FilterLimits{
			DefaultMinEV: int(cfg.Analytics.DefaultMinEV),
			MaxMinEV:     int(cfg.Analytics.MaxMinEV),
			RangeMode:    cfg.RangeMode(),
		},
		ExportPath:  cfg.Export.Path,
		Animation:   app.NewAnimationFetcher(cfg, reportCache),
		CORSOrigins: origins,
		StaticDir:   cfg.Server.StaticDir,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting API server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
