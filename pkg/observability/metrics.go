package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exports pipeline and cache events as Prometheus metrics.
// Each Metrics owns its registry, so several can coexist in tests.
// The CLI writes the registry to a node-exporter textfile after a run.
type Metrics struct {
	registry *prometheus.Registry

	evaluations    *prometheus.CounterVec
	evalDuration   prometheus.Histogram
	indices        prometheus.Histogram
	searchRounds   prometheus.Counter
	frontierStates prometheus.Histogram
	batches        prometheus.Counter
	batchWords     *prometheus.CounterVec
	cacheOps       *prometheus.CounterVec
	cacheBytes     prometheus.Counter
}

// NewMetrics creates a Metrics with its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		evaluations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nestindex_evaluations_total",
			Help: "Completed evaluations by status",
		}, []string{"status"}),
		evalDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "nestindex_evaluation_duration_seconds",
			Help:    "Time spent in the nesting engine per word",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5, 30},
		}),
		indices: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "nestindex_nesting_index",
			Help:    "Distribution of computed nesting indices",
			Buckets: prometheus.LinearBuckets(0, 1, 8),
		}),
		searchRounds: f.NewCounter(prometheus.CounterOpts{
			Name: "nestindex_search_rounds_total",
			Help: "Breadth-first search rounds across all evaluations",
		}),
		frontierStates: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "nestindex_search_frontier_states",
			Help:    "Number of states in each search frontier",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		batches: f.NewCounter(prometheus.CounterOpts{
			Name: "nestindex_batches_total",
			Help: "Batch runs started",
		}),
		batchWords: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nestindex_batch_words_total",
			Help: "Words finished in batch runs by outcome",
		}, []string{"outcome"}),
		cacheOps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nestindex_cache_operations_total",
			Help: "Cache operations by key type and result",
		}, []string{"key_type", "result"}),
		cacheBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "nestindex_cache_written_bytes_total",
			Help: "Bytes written to the cache",
		}),
	}
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteFile writes the metrics in the Prometheus text format.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) OnEvaluateStart(context.Context, string, bool) {}

func (m *Metrics) OnEvaluateComplete(_ context.Context, _ string, index int, d time.Duration, err error) {
	if err != nil {
		m.evaluations.WithLabelValues("error").Inc()
		return
	}
	m.evaluations.WithLabelValues("ok").Inc()
	m.evalDuration.Observe(d.Seconds())
	m.indices.Observe(float64(index))
}

func (m *Metrics) OnSearchRound(_ context.Context, _ string, _ int, frontier int) {
	m.searchRounds.Inc()
	m.frontierStates.Observe(float64(frontier))
}

func (m *Metrics) OnBatchStart(context.Context, string, int) {
	m.batches.Inc()
}

func (m *Metrics) OnBatchComplete(_ context.Context, _ string, evaluated, failed int, _ time.Duration) {
	m.batchWords.WithLabelValues("evaluated").Add(float64(evaluated))
	m.batchWords.WithLabelValues("failed").Add(float64(failed))
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheOps.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.Add(float64(size))
}

var (
	_ PipelineHooks = (*Metrics)(nil)
	_ CacheHooks    = (*Metrics)(nil)
)
