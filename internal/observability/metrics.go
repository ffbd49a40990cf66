package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cvgen"

// Generation outcomes recorded in cvgen_generations_total
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeCached  = "cached"
)

// Metrics holds the generator's Prometheus collectors on a private
// registry. A nil *Metrics records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	generations   *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	browsersInUse prometheus.Gauge
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
}

// NewMetrics registers all collectors plus the Go and process collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Generation attempts by template, format and outcome.",
		}, []string{"template", "format", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Wall time of one generation attempt.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"format"}),
		browsersInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pdf_browsers_in_use",
			Help:      "Headless browsers currently printing a PDF.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Generations served from the result cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Result cache lookups that found nothing.",
		}),
	}
	m.registry.MustRegister(
		m.generations,
		m.duration,
		m.browsersInUse,
		m.cacheHits,
		m.cacheMisses,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveGeneration records one finished cell
func (m *Metrics) ObserveGeneration(template, format, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(template, format, outcome).Inc()
	m.duration.WithLabelValues(format).Observe(d.Seconds())
}

// SetBrowsersInUse matches the pdf pool's InUse hook
func (m *Metrics) SetBrowsersInUse(n int) {
	if m == nil {
		return
	}
	m.browsersInUse.Set(float64(n))
}

// CacheHit counts a result served from cache
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

// CacheMiss counts a cache lookup that found nothing
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
