// Package errorreport forwards unexpected failures to Sentry.
// When no DSN is configured the reporter is inert.
package errorreport

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"drishti_backend/platform/config"
	"drishti_backend/platform/logger"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

// Reporter captures errors with request context attached.
type Reporter struct {
	enabled bool
	log     *logger.Logger
}

// Init configures the global Sentry client. The returned flush function
// should be deferred by the caller.
func Init(cfg config.ObservabilityConfig, log *logger.Logger) (*Reporter, func(), error) {
	if cfg.GetSentryDSN() == "" {
		return &Reporter{log: log}, func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.GetSentryDSN(),
		Environment:      cfg.GetEnv(),
		TracesSampleRate: 0.2,
	}); err != nil {
		return nil, nil, fmt.Errorf("sentry initialization failed: %w", err)
	}

	if log != nil {
		log.Info("error reporting enabled", "environment", cfg.GetEnv())
	}
	flush := func() { sentry.Flush(2 * time.Second) }
	return &Reporter{enabled: true, log: log}, flush, nil
}

// Disabled returns a reporter that never talks to Sentry.
func Disabled() *Reporter {
	return &Reporter{}
}

// Capture records err with the given tags. Safe on a nil receiver.
func (r *Reporter) Capture(ctx context.Context, err error, tags map[string]string) {
	if r == nil || err == nil || !r.enabled {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		hub.CaptureException(err)
	})
}

// Middleware opens a Sentry transaction per request and binds a hub to the
// request context so Capture calls from handlers carry request metadata.
func (r *Reporter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r == nil || !r.enabled {
			c.Next()
			return
		}

		hub := sentry.CurrentHub().Clone()
		ctx := sentry.SetHubOnContext(c.Request.Context(), hub)

		transaction := sentry.StartTransaction(ctx,
			fmt.Sprintf("%s %s", c.Request.Method, c.FullPath()),
			sentry.ContinueFromRequest(c.Request),
		)
		defer func() {
			transaction.Status = sentry.HTTPtoSpanStatus(c.Writer.Status())
			transaction.Finish()
		}()

		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetContext("Request", map[string]interface{}{
				"Method":  c.Request.Method,
				"URL":     c.Request.URL.String(),
				"Headers": safeHeaders(c.Request.Header),
			})
			scope.SetTag("http.method", c.Request.Method)
			scope.SetTag("http.route", c.FullPath())
		})

		c.Request = c.Request.WithContext(transaction.Context())
		c.Next()
	}
}

func safeHeaders(h http.Header) map[string]interface{} {
	safe := make(map[string]interface{}, len(h))
	for k, v := range h {
		if strings.EqualFold(k, "Authorization") || strings.EqualFold(k, "Cookie") {
			safe[k] = "[FILTERED]"
		} else {
			safe[k] = v
		}
	}
	return safe
}
