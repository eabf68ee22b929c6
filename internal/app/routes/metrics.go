package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MetricsPath serves the Prometheus exposition
const MetricsPath = "/metrics"

// SetupMetrics mounts the Prometheus handler
func SetupMetrics(router *gin.Engine, handler http.Handler) {
	router.GET(MetricsPath, gin.WrapH(handler))
}
