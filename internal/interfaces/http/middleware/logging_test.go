package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgraph/internal/testutil"
)

type observation struct {
	method, path string
	status       int
}

type fakeHTTPMetrics struct {
	mu       sync.Mutex
	seen     []observation
	inFlight int
}

func (f *fakeHTTPMetrics) RecordHTTPRequest(method, path string, statusCode int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, observation{method, path, statusCode})
}

func (f *fakeHTTPMetrics) HTTPRequestStarted()  { f.inFlight++ }
func (f *fakeHTTPMetrics) HTTPRequestFinished() { f.inFlight-- }

func loggingEngine(logger logging.Logger, metrics HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), RequestLogging(logger, metrics, DefaultLoggingConfig()))
	r.GET("/api/v1/vocabularies/:name", func(c *gin.Context) {
		switch c.Param("name") {
		case "missing":
			c.Status(http.StatusNotFound)
		case "boom":
			c.Status(http.StatusInternalServerError)
		default:
			c.String(http.StatusOK, "ok")
		}
	})
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRequestLogging_LevelsByStatus(t *testing.T) {
	logger := testutil.NewMockLogger()
	metrics := &fakeHTTPMetrics{}
	r := loggingEngine(logger, metrics)

	serve(r, http.MethodGet, "/api/v1/vocabularies/PTC_FM", map[string]string{HeaderRequestID: "req-1"})
	serve(r, http.MethodGet, "/api/v1/vocabularies/missing", nil)
	serve(r, http.MethodGet, "/api/v1/vocabularies/boom", nil)

	entry, ok := logger.Find("info", "HTTP request completed")
	require.True(t, ok)
	route, _ := entry.Field("route")
	assert.Equal(t, "/api/v1/vocabularies/:name", route)
	id, _ := entry.Field(logging.FieldRequestID)
	assert.Equal(t, "req-1", id)
	name, _ := entry.Field("logger")
	assert.Equal(t, "http", name)

	assert.True(t, logger.HasMessage("warn", "HTTP request completed with client error"))
	assert.True(t, logger.HasMessage("error", "HTTP request completed with server error"))

	require.Len(t, metrics.seen, 3)
	assert.Equal(t, observation{"GET", "/api/v1/vocabularies/:name", 200}, metrics.seen[0])
	assert.Equal(t, 0, metrics.inFlight)
}

func TestRequestLogging_SkipPathsStillMeasured(t *testing.T) {
	logger := testutil.NewMockLogger()
	metrics := &fakeHTTPMetrics{}
	r := loggingEngine(logger, metrics)

	serve(r, http.MethodGet, "/healthz", nil)

	assert.Empty(t, logger.GetMessages())
	require.Len(t, metrics.seen, 1)
	assert.Equal(t, "/healthz", metrics.seen[0].path)
}

func TestRequestLogging_UnmatchedRoute(t *testing.T) {
	metrics := &fakeHTTPMetrics{}
	r := loggingEngine(logging.NewNopLogger(), metrics)

	w := serve(r, http.MethodGet, "/no/such/path", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.Len(t, metrics.seen, 1)
	assert.Equal(t, unmatchedRoute, metrics.seen[0].path)
}

func TestRequestLogging_NilMetrics(t *testing.T) {
	r := loggingEngine(logging.NewNopLogger(), nil)
	assert.NotPanics(t, func() { serve(r, http.MethodGet, "/healthz", nil) })
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.String(http.StatusOK, string(body))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("short")))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "short", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("far too long for the limit")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

//Personal.AI order the ending
