package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const topFeatureCount = 10

// GetClusters returns cluster characteristics and demographic breakdowns.
func (h *Handler) GetClusters(c *gin.Context) {
	a, ok := h.latest(c)
	if !ok {
		return
	}
	if !a.Clustered() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "clustering analysis not available",
			"details": a.SegmentationError,
		})
		return
	}

	counts := map[string]int{}
	for id, n := range a.Assignment.Counts() {
		counts[string(a.Assignment.Label(id))] = n
	}
	c.JSON(http.StatusOK, gin.H{
		"analysis_id":     a.ID,
		"k":               a.Assignment.K,
		"distribution":    counts,
		"characteristics": a.ClusterSummary,
		"demographics":    a.Demographics,
		"summaries":       a.Summaries,
	})
}

// GetModel returns the held-out evaluation and the most important questions.
func (h *Handler) GetModel(c *gin.Context) {
	a, ok := h.latest(c)
	if !ok {
		return
	}
	if !a.Modeled() {
		details := a.ModelingError
		if details == "" {
			details = a.SegmentationError
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "predictive modeling not available",
			"details": details,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"analysis_id":  a.ID,
		"evaluation":   a.Report,
		"top_features": a.TopFeatures(topFeatureCount),
	})
}
