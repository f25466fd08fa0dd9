package routes

import (
	"go-mindfit/handlers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter mounts the API. gatherer backs /metrics; nil skips it.
func SetupRouter(h *handlers.Handler, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to MindFIT!",
		})
	})

	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	r.Static(handlers.AssetsRoute, h.AssetsDir())

	// api routes
	api := r.Group("/api/mindfit")
	{
		api.GET("/analysis", h.GetLatestAnalysis)
		api.POST("/analysis", h.UploadAnalysis)
		api.POST("/analysis/refresh", h.RefreshAnalysis)
		api.GET("/analyses", h.ListStoredAnalyses)
		api.GET("/analysis/:id", h.GetStoredAnalysis)
		api.GET("/clusters", h.GetClusters)
		api.GET("/model", h.GetModel)
		api.POST("/assess", h.Assess)
		api.GET("/visualizations", h.GetVisualizations)
	}

	return r
}
