package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "indyradio"

// Metrics holds the Prometheus counters, histograms, and gauges for the recommendation service.
type Metrics struct {
	// Recommendation metrics.
	RecommendationsServed prometheus.Counter
	RecommendationErrors  *prometheus.CounterVec // labels: reason={incomplete,invalid_limit,invalid}
	RecommendationScore   prometheus.Histogram
	RecommendationCache   *prometheus.CounterVec // labels: result={hit,miss}

	// Questionnaire session metrics.
	SessionsCreated prometheus.Counter
	SessionsActive  prometheus.Gauge
	SessionsExpired prometheus.Counter

	// Event pipeline metrics.
	EventsPublished         prometheus.Counter
	EventsDropped           prometheus.Counter
	EventsLoaded            prometheus.Counter
	LoadErrors              prometheus.Counter
	PipelineRunning         prometheus.Gauge
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.RecommendationsServed,
		m.RecommendationErrors,
		m.RecommendationScore,
		m.RecommendationCache,
		m.SessionsCreated,
		m.SessionsActive,
		m.SessionsExpired,
		m.EventsPublished,
		m.EventsDropped,
		m.EventsLoaded,
		m.LoadErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RecommendationsServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_served_total",
			Help:      "Total recommendation lists returned to callers.",
		}),
		RecommendationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendation_errors_total",
			Help:      "Recommendation requests rejected by reason.",
		}, []string{"reason"}),
		RecommendationScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendation_score",
			Help:      "Match score of every returned recommendation.",
			Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),
		RecommendationCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendation_cache_total",
			Help:      "Recommendation cache lookups by result.",
		}, []string{"result"}),
		SessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_created_total",
			Help:      "Questionnaire sessions started.",
		}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Questionnaire sessions currently held in memory.",
		}),
		SessionsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_expired_total",
			Help:      "Questionnaire sessions removed after their TTL.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Recommendation events accepted by the pipeline.",
		}),
		EventsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Recommendation events dropped because the buffer was full.",
		}),
		EventsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_loaded_total",
			Help:      "Recommendation events written to the sink.",
		}),
		LoadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_errors_total",
			Help:      "Failed batch writes to the sink.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the event pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of events per batch written to the sink.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a batch write to the sink.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}
}
