package handlers

import (
	"net/http"

	"go-mindfit/db"
	"go-mindfit/processor"
	"go-mindfit/types"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Handler serves the MindFIT API from a Runner's cached analysis.
type Handler struct {
	runner    *processor.Runner
	store     db.AnalysisStore
	assetsDir string

	assessments *prometheus.CounterVec
}

// NewHandler wires the API. store may be nil when snapshots are disabled.
func NewHandler(runner *processor.Runner, store db.AnalysisStore, assetsDir string, registerer prometheus.Registerer) *Handler {
	h := &Handler{
		runner:    runner,
		store:     store,
		assetsDir: assetsDir,
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mindfit_assessments_total",
			Help: "Individual assessments by resulting label",
		}, []string{"label"}),
	}
	if registerer != nil {
		registerer.MustRegister(h.assessments)
	}
	return h
}

func (h *Handler) AssetsDir() string { return h.assetsDir }

// latest writes 503 and returns false when nothing has been analyzed yet.
func (h *Handler) latest(c *gin.Context) (*types.Analysis, bool) {
	a, ok := h.runner.Cache().Latest()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "analysis unavailable",
		})
		return nil, false
	}
	return a, true
}
