package middleware

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
)

func requestIDEngine(seen *string, fromCtx *string) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		*seen = GetRequestID(c)
		*fromCtx = logging.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequestID_ReusesHeader(t *testing.T) {
	var seen, fromCtx string
	w := serve(requestIDEngine(&seen, &fromCtx), http.MethodGet, "/", map[string]string{HeaderRequestID: "abc-123"})

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", fromCtx)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}

func TestRequestID_Generates(t *testing.T) {
	var seen, fromCtx string
	w := serve(requestIDEngine(&seen, &fromCtx), http.MethodGet, "/", nil)

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(HeaderRequestID))
	assert.Equal(t, seen, fromCtx)
}

func TestRequestID_RejectsOversized(t *testing.T) {
	var seen, fromCtx string
	serve(requestIDEngine(&seen, &fromCtx), http.MethodGet, "/", map[string]string{
		HeaderRequestID: strings.Repeat("x", maxRequestIDLen+1),
	})

	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}

//Personal.AI order the ending
