package handlers

import (
	"net/http"

	metrics "bank-core/internal/pkg/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// GetMetrics returns the collected in-memory request metrics as JSON.
func GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, metrics.List())
}

// PrometheusMetrics exposes the process's Prometheus metrics in the
// standard text exposition format.
func PrometheusMetrics(c *gin.Context) {
	promhttp.Handler().ServeHTTP(c.Writer, c.Request)
}
