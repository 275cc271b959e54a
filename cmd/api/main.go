package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BruksfildServices01/studio-scheduler/internal/audit"
	"github.com/BruksfildServices01/studio-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/studio-scheduler/internal/db"
	appointmentDomain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/studio-scheduler/internal/logger"
	"github.com/BruksfildServices01/studio-scheduler/internal/metrics"
	"github.com/BruksfildServices01/studio-scheduler/internal/middleware"
	"github.com/BruksfildServices01/studio-scheduler/internal/notify"
	"github.com/BruksfildServices01/studio-scheduler/internal/routes"
	"github.com/BruksfildServices01/studio-scheduler/internal/timezone"
)

func main() {

	cfg := config.Load()
	log := logger.New(logger.Config{Env: cfg.AppEnv, Level: cfg.LogLevel})

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer func() {
		if err := dbpkg.Close(db); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	// ======================================================
	// 🗓️ AGENDA
	// ======================================================
	loc := timezone.Location(cfg.CalendarTimezone)
	log.Info().Str("location", loc.String()).Msg("calendar timezone")

	var slotCache appointmentDomain.SlotCache = cache.Nop{}
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, slot cache disabled")
		} else {
			defer client.Close()
			slotCache = cache.NewRedisSlotCache(client, cfg.SlotCacheTTL, log)
		}
	}

	// ======================================================
	// 📣 SIDE EFFECTS
	// ======================================================
	notifier := notify.NewDispatcher(notify.NewLogSender(log), cfg.NotifyQueueSize, log)
	defer notifier.Close()

	auditDispatcher := audit.NewDispatcher(audit.New(db), cfg.NotifyQueueSize, log)
	defer auditDispatcher.Close()

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New(cfg.AppName, prometheus.DefaultRegisterer)
		r.Use(collector.Middleware())
		r.GET(cfg.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, routes.Runtime{
		Cache:    slotCache,
		Notifier: notifier,
		Audit:    auditDispatcher,
		Metrics:  collector,
		Log:      log,
		Location: loc,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
}
