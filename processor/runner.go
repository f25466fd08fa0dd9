package processor

import (
	"context"
	"sync"
	"time"

	"go-mindfit/nlp"
	"go-mindfit/survey"
	"go-mindfit/types"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Saver persists finished analyses. db.FirestoreStore implements it.
type Saver interface {
	SaveAnalysis(ctx context.Context, a *types.Analysis) error
}

// Runner runs the pipeline for the server, the scheduler and the CLI, keeps
// the latest result in its Cache and optionally snapshots it.
type Runner struct {
	scorer   nlp.PolarityScorer
	opts     Options
	dataPath string
	cache    *Cache
	saver    Saver

	// runs are serialized so the cache ends up holding the last one started
	mu sync.Mutex

	pipelineRuns     *prometheus.CounterVec
	pipelineDuration prometheus.Histogram
	respondents      prometheus.Gauge
	malformedCells   prometheus.Counter
	modelAccuracy    prometheus.Gauge
}

// NewRunner builds a Runner. saver may be nil; so may registerer, in which
// case the metrics are kept but not exported.
func NewRunner(scorer nlp.PolarityScorer, opts Options, dataPath string, saver Saver, registerer prometheus.Registerer) *Runner {
	r := &Runner{
		scorer:   scorer,
		opts:     opts,
		dataPath: dataPath,
		cache:    NewCache(),
		saver:    saver,
		pipelineRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mindfit_pipeline_runs_total",
			Help: "Pipeline runs by outcome",
		}, []string{"status"}),
		pipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mindfit_pipeline_duration_seconds",
			Help:    "Time taken by one pipeline run",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		respondents: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mindfit_respondents",
			Help: "Respondents in the latest analysis",
		}),
		malformedCells: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mindfit_malformed_cells_total",
			Help: "Cells scored neutral because they could not be parsed or scored",
		}),
		modelAccuracy: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mindfit_model_accuracy",
			Help: "Held-out accuracy of the latest segment classifier",
		}),
	}

	if registerer != nil {
		registerer.MustRegister(r.pipelineRuns, r.pipelineDuration, r.respondents, r.malformedCells, r.modelAccuracy)
	}
	return r
}

func (r *Runner) Cache() *Cache { return r.cache }

// DataPath is the survey export Refresh reads.
func (r *Runner) DataPath() string { return r.dataPath }

// Analyze runs the pipeline on table and publishes the result.
func (r *Runner) Analyze(ctx context.Context, table *types.Table) (*types.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	analysis, err := RunPipeline(ctx, table, r.scorer, r.opts)
	r.pipelineDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		r.pipelineRuns.WithLabelValues("failed").Inc()
		return nil, err
	}

	r.pipelineRuns.WithLabelValues(runStatus(analysis)).Inc()
	r.respondents.Set(float64(analysis.Overview.Personnel))
	r.malformedCells.Add(float64(analysis.Matrix.MalformedCells))
	if analysis.Modeled() {
		r.modelAccuracy.Set(analysis.Report.Accuracy)
	}

	r.cache.Store(analysis)
	if r.saver != nil {
		if err := r.saver.SaveAnalysis(ctx, analysis); err != nil {
			logrus.WithError(err).WithField("analysisId", analysis.ID).Warn("Failed to save analysis snapshot")
		}
	}
	return analysis, nil
}

// Refresh reloads the configured survey export and analyzes it.
func (r *Runner) Refresh(ctx context.Context) (*types.Analysis, error) {
	table, err := survey.LoadCSV(r.dataPath)
	if err != nil {
		r.pipelineRuns.WithLabelValues("failed").Inc()
		return nil, err
	}
	return r.Analyze(ctx, table)
}

func runStatus(a *types.Analysis) string {
	switch {
	case !a.Clustered():
		return "unclustered"
	case !a.Modeled():
		return "unmodeled"
	default:
		return "complete"
	}
}
