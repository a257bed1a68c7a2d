// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"drishti_backend/internal/observability/metrics"
	"drishti_backend/platform/config"
	"drishti_backend/platform/errorreport"
	"drishti_backend/platform/logger"

	"github.com/prometheus/client_golang/prometheus"
)

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (address and CORS settings).
	Config config.HTTPConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Reporter forwards unexpected errors to Sentry when configured.
	Reporter *errorreport.Reporter
	// HTTPMetrics records per-route request metrics.
	HTTPMetrics *metrics.HTTPMetrics
	// Gatherer backs the /metrics endpoint.
	Gatherer prometheus.Gatherer
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
