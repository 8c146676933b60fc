package config

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saloniq_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	// McpToolCallsTotal counts tools/call dispatches by tool name.
	McpToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saloniq_mcp_tool_calls_total",
			Help: "MCP tool calls by tool name.",
		},
		[]string{"tool"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, McpToolCallsTotal)
}

// RequestMetrics counts every request against its matched route.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(
			c.Request.Method, route, strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}

// MetricsHandler serves the Prometheus scrape endpoint.
func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
