package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"drishti_backend/internal/booking"
	"drishti_backend/internal/contact"
	"drishti_backend/internal/contact/service"
	"drishti_backend/internal/email"
	apphttp "drishti_backend/internal/http"
	"drishti_backend/internal/http/router"
	"drishti_backend/internal/observability/metrics"
	"drishti_backend/platform/config"
	"drishti_backend/platform/errorreport"
	"drishti_backend/platform/logger"
	"drishti_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "emailProvider", cfg.EmailProvider)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	reporter, flush, err := errorreport.Init(cfg, log)
	if err != nil {
		log.Error("failed to initialize error reporting", "error", err)
		panic("failed to initialize error reporting: " + err.Error())
	}
	defer flush()

	sender, err := email.NewSender(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Shared validator instance for dependency injection
	val := validator.New()
	schema := booking.MustSchema(val)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	contactModule, err := contact.NewModule(cfg, val, schema, sender, log,
		service.WithMetrics(metrics.NewContactMetrics(reg)),
		service.WithReporter(reporter),
	)
	if err != nil {
		log.Error("failed to initialize contact module", "error", err)
		panic("failed to initialize contact module: " + err.Error())
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:      cfg,
		Logger:      log,
		Reporter:    reporter,
		HTTPMetrics: metrics.NewHTTPMetrics(reg),
		Gatherer:    reg,
		Modules: []apphttp.Module{
			contactModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		flush()
		os.Exit(1)
	}
	log.Info("server stopped")
}
