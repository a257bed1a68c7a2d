package errorreport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"drishti_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

type testObservabilityConfig struct{}

func (testObservabilityConfig) GetEnv() string       { return "test" }
func (testObservabilityConfig) GetSentryDSN() string { return "" }

func TestInitWithoutDSNIsInert(t *testing.T) {
	r, flush, err := Init(testObservabilityConfig{}, logger.Discard())
	if err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	defer flush()

	if r.enabled {
		t.Fatal("expected reporter to be disabled without DSN")
	}
	r.Capture(context.Background(), errors.New("boom"), map[string]string{"k": "v"})
}

func TestNilReporterIsSafe(t *testing.T) {
	var r *Reporter
	r.Capture(context.Background(), errors.New("boom"), nil)
}

func TestMiddlewarePassesThroughWhenDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Disabled().Middleware())
	engine.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("unexpected response %d %q", w.Code, w.Body.String())
	}
}

func TestSafeHeadersFiltersCredentials(t *testing.T) {
	h := http.Header{}
	h.Set("Authorization", "Bearer secret")
	h.Set("Accept", "application/json")

	safe := safeHeaders(h)
	if safe["Authorization"] != "[FILTERED]" {
		t.Fatalf("authorization not filtered: %v", safe["Authorization"])
	}
	if _, ok := safe["Accept"]; !ok {
		t.Fatal("expected Accept to be kept")
	}
}
