// Package metrics holds the Prometheus collectors of the news pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcomes used as the "status" label.
const (
	StatusOK         = "ok"
	StatusHTTPError  = "http_error"
	StatusTransport  = "transport_error"
	StatusParseError = "parse_error"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	feedFetches     *prometheus.CounterVec
	articlesParsed  *prometheus.CounterVec
	pipelineRuns    *prometheus.CounterVec
	pipelineLatency prometheus.Histogram
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		feedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "news",
			Name:      "feed_fetches_total",
			Help:      "Feed fetch and parse outcomes per source.",
		}, []string{"source", "status"}),
		articlesParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "news",
			Name:      "articles_parsed_total",
			Help:      "Articles extracted per source.",
		}, []string{"source"}),
		pipelineRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "news",
			Name:      "pipeline_runs_total",
			Help:      "Pipeline invocations by result.",
		}, []string{"result"}),
		pipelineLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "news",
			Name:      "pipeline_duration_seconds",
			Help:      "Wall time of a full fetch, parse and merge run.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30},
		}),
	}
	reg.MustRegister(m.feedFetches, m.articlesParsed, m.pipelineRuns, m.pipelineLatency)
	return m
}

func (m *Metrics) FeedFetched(source, status string) {
	if m == nil {
		return
	}
	m.feedFetches.WithLabelValues(source, status).Inc()
}

func (m *Metrics) ArticlesParsed(source string, n int) {
	if m == nil {
		return
	}
	m.articlesParsed.WithLabelValues(source).Add(float64(n))
}

// PipelineFinished records one run; result is "success", "failure" or "cancelled".
func (m *Metrics) PipelineFinished(result string, took time.Duration) {
	if m == nil {
		return
	}
	m.pipelineRuns.WithLabelValues(result).Inc()
	m.pipelineLatency.Observe(took.Seconds())
}
