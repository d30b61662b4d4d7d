package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Dolyphin/continuum-mechanics/internal/observability"
	"github.com/Dolyphin/continuum-mechanics/mcp"
)

func newRouter(h *mcp.Handler, logger zerolog.Logger, maxBodyBytes int64) *gin.Engine {
	r := gin.New()
	r.Use(
		observability.RequestID(),
		observability.RequestLogger(logger),
		observability.RequestMetricsMiddleware(),
		gin.CustomRecovery(func(c *gin.Context, rec any) {
			logger.Error().
				Str("request_id", observability.GetRequestID(c)).
				Interface("panic", rec).
				Msg("panic in handler")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}),
	)

	tools := mcp.ToolNames()

	// POST /tool runs a single tool call.
	r.POST("/tool", func(c *gin.Context) {
		body := http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		defer body.Close()

		dec := json.NewDecoder(body)
		dec.DisallowUnknownFields()

		var req mcp.ToolRequest
		if err := dec.Decode(&req); err != nil {
			status := http.StatusBadRequest
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		if dec.More() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: trailing data"})
			return
		}

		start := time.Now()
		resp := h.Handle(req)
		observability.RecordToolCall(req.Tool, slices.Contains(tools, req.Tool), resp.Error == "", time.Since(start))
		c.JSON(http.StatusOK, resp)
	})

	// GET /schema returns the tool schema for agent registration.
	r.GET("/schema", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(mcp.MCPToolSpec()))
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.GET("/metrics", gin.WrapH(observability.MetricsHandler()))
	return r
}
