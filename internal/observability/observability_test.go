package observability

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	RecordHTTPRequest("GET", "/health", 200, 12*time.Millisecond)

	before := testutil.ToFloat64(toolCalls.WithLabelValues("grad", "true"))
	RecordToolCall("grad", true, true, 3*time.Millisecond)
	require.Equal(t, before+1, testutil.ToFloat64(toolCalls.WithLabelValues("grad", "true")))

	before = testutil.ToFloat64(toolCalls.WithLabelValues("unknown", "false"))
	RecordToolCall("no_such_tool", false, false, time.Millisecond)
	require.Equal(t, before+1, testutil.ToFloat64(toolCalls.WithLabelValues("unknown", "false")))
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "continuum", "warn")
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "shown", entry["message"])
	require.Equal(t, "continuum", entry["app"])

	buf.Reset()
	fallback := NewLogger(&buf, "continuum", "nonsense")
	fallback.Debug().Msg("dropped")
	require.Empty(t, buf.String())
}

func TestMiddlewareChain(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestID(), RequestLogger(NewLogger(&buf, "continuum", "info")), RequestMetricsMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get(RequestIDHeader)
	require.Len(t, id, 36)
	require.Equal(t, id, w.Body.String())
	require.Contains(t, buf.String(), id)

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(RequestIDHeader, "caller-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "caller-id", w.Header().Get(RequestIDHeader))
	require.Contains(t, buf.String(), `"level":"warn"`)
}

func TestMetricsHandler(t *testing.T) {
	RecordToolCall("div", true, true, time.Millisecond)
	w := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "continuum_tool_calls_total")
}
