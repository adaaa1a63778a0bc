// Package metrics exposes Prometheus collectors for path queries.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Search outcomes used as the "outcome" label.
const (
	OutcomeFound   = "found"
	OutcomeNoPath  = "no_path"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Recorder owns the collectors registered for one process.
type Recorder struct {
	registry       *prometheus.Registry
	searches       *prometheus.CounterVec
	searchDuration prometheus.Histogram
	pathHops       prometheus.Histogram
	lookupMatches  prometheus.Histogram
	graphVertices  *prometheus.GaugeVec
	graphCredits   prometheus.Gauge
}

// New registers the collectors on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "degrees_path_searches_total",
			Help: "Shortest path searches by outcome.",
		}, []string{"outcome"}),
		searchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "degrees_path_search_duration_seconds",
			Help:    "Time spent searching and rendering a path.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
		pathHops: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "degrees_path_hops",
			Help:    "Hop count of found paths.",
			Buckets: prometheus.LinearBuckets(0, 2, 12),
		}),
		lookupMatches: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "degrees_name_lookup_matches",
			Help:    "Number of persons matched per name lookup.",
			Buckets: []float64{0, 1, 2, 5, 10, 50, 100},
		}),
		graphVertices: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "degrees_graph_vertices",
			Help: "Vertices loaded into the credit graph.",
		}, []string{"kind"}),
		graphCredits: factory.NewGauge(prometheus.GaugeOpts{
			Name: "degrees_graph_credits",
			Help: "Person to title credits loaded into the credit graph.",
		}),
	}
}

// ObserveSearch records one path query.
func (r *Recorder) ObserveSearch(outcome string, hops int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.searches.WithLabelValues(outcome).Inc()
	r.searchDuration.Observe(elapsed.Seconds())
	if outcome == OutcomeFound {
		r.pathHops.Observe(float64(hops))
	}
}

// ObserveLookup records the size of a name lookup result.
func (r *Recorder) ObserveLookup(matches int) {
	if r == nil {
		return
	}
	r.lookupMatches.Observe(float64(matches))
}

// SetGraphSize publishes the loaded graph size.
func (r *Recorder) SetGraphSize(persons, titles, credits int) {
	if r == nil {
		return
	}
	r.graphVertices.WithLabelValues("person").Set(float64(persons))
	r.graphVertices.WithLabelValues("title").Set(float64(titles))
	r.graphCredits.Set(float64(credits))
}

// Registry exposes the underlying registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
