package router

import (
	"net/http"
	"time"

	apphttp "drishti_backend/internal/http"
	"drishti_backend/internal/observability/metrics"
	"drishti_backend/platform/config"
	"drishti_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(app.Reporter.Middleware())
	engine.Use(app.HTTPMetrics.Middleware())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	if corsCfg, ok := corsConfig(app.Config); ok {
		engine.Use(cors.New(corsCfg))
	}

	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(metrics.Handler(app.Gatherer)))

	rctx := &apphttp.RouterContext{
		Engine: engine,
		API:    engine.Group("/api"),
	}
	for _, m := range app.Modules {
		app.Logger.Debug("registering module routes", "module", m.Name())
		m.RegisterRoutes(rctx)
	}

	return engine
}

// corsConfig reports false when no origin is allowed, in which case the
// middleware is left off and browsers apply same-origin rules.
func corsConfig(cfg config.HTTPConfig) (cors.Config, bool) {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", httpkit.HeaderRequestID},
		ExposeHeaders: []string{httpkit.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	switch {
	case cfg.GetCORSAllowAll():
		c.AllowAllOrigins = true
	case len(cfg.GetCORSOrigins()) > 0:
		c.AllowOrigins = cfg.GetCORSOrigins()
	default:
		return c, false
	}
	return c, true
}
