package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lixenwraith/tilepath/navigation"
)

// Search collects per-search outcome metrics
type Search struct {
	outcomes     *prometheus.CounterVec
	advanceCalls *prometheus.HistogramVec
	expanded     *prometheus.HistogramVec
	pathLength   *prometheus.HistogramVec
	steps        *prometheus.CounterVec
}

// NewSearch registers the search collectors on reg
func NewSearch(reg prometheus.Registerer) *Search {
	f := promauto.With(reg)
	return &Search{
		outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tilepath_search_outcomes_total",
			Help: "Terminal search results by kind and result code",
		}, []string{"kind", "result"}),

		advanceCalls: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tilepath_search_advance_calls",
			Help:    "Advance calls spent per search",
			Buckets: []float64{1, 2, 3, 5, 10, 20, 50, 100, 200},
		}, []string{"kind"}),

		expanded: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tilepath_search_expanded_nodes",
			Help:    "Nodes expanded per search, both frontiers",
			Buckets: prometheus.ExponentialBuckets(16, 4, 8), // 16 to ~262k
		}, []string{"kind"}),

		pathLength: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tilepath_search_path_length",
			Help:    "Reconstructed path length in full-resolution tiles",
			Buckets: prometheus.ExponentialBuckets(4, 2, 10), // 4 to 2048
		}, []string{"kind"}),

		steps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tilepath_direct_steps_total",
			Help: "Direct-step queries by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveSearch records one finished search; pathLen is ignored unless r is Completed
func (m *Search) ObserveSearch(kind string, r navigation.Result, stats navigation.SearchStats, pathLen int) {
	m.outcomes.WithLabelValues(kind, r.String()).Inc()
	m.advanceCalls.WithLabelValues(kind).Observe(float64(stats.AdvanceCalls))
	m.expanded.WithLabelValues(kind).Observe(float64(stats.Expanded))
	if r == navigation.Completed {
		m.pathLength.WithLabelValues(kind).Observe(float64(pathLen))
	}
}

// ObserveStep records one direct-step query
func (m *Search) ObserveStep(arrived bool) {
	outcome := "moved"
	if arrived {
		outcome = "arrived"
	}
	m.steps.WithLabelValues(outcome).Inc()
}
