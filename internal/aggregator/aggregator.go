// Package aggregator runs the news pipeline: settle-all fetch, per-feed parse,
// then merge, rank and slice.
package aggregator

import (
	"context"
	"errors"
	"time"

	"kaset_news/internal/fetcher"
	"kaset_news/internal/logger"
	"kaset_news/internal/metrics"
	"kaset_news/internal/models"
	"kaset_news/internal/parser"

	"github.com/google/uuid"
)

// FeedFetcher returns exactly one settled result per source.
type FeedFetcher interface {
	FetchAll(ctx context.Context, sources []models.FeedSource) []fetcher.Result
}

// Aggregator holds no state between runs; every Run starts from scratch.
type Aggregator struct {
	fetcher FeedFetcher
	parser  *parser.Parser
	sources []models.FeedSource
	metrics *metrics.Metrics
	timeout time.Duration
}

type Option func(*Aggregator)

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Aggregator) { a.metrics = m }
}

// WithTimeout bounds the fetch phase of each run. Sources still pending when
// it fires count as failed; the others are used as usual.
func WithTimeout(d time.Duration) Option {
	return func(a *Aggregator) { a.timeout = d }
}

func New(f FeedFetcher, p *parser.Parser, sources []models.FeedSource, opts ...Option) *Aggregator {
	a := &Aggregator{
		fetcher: f,
		parser:  p,
		sources: append([]models.FeedSource(nil), sources...),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes one pipeline invocation and returns at most limit articles,
// newest first. It returns ErrNoArticles when nothing could be loaded, and
// ctx.Err() when ctx was cancelled, in which case the result must be dropped.
func (a *Aggregator) Run(ctx context.Context, limit int) ([]models.Article, error) {
	start := time.Now()
	log := logger.Log.WithFields(logger.Fields{
		"run_id": uuid.NewString(),
		"limit":  limit,
	})
	log.Debug("Starting news pipeline")

	fetchCtx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	results := a.fetcher.FetchAll(fetchCtx, a.sources)

	if err := ctx.Err(); err != nil {
		a.metrics.PipelineFinished("cancelled", time.Since(start))
		log.Warnf("Pipeline cancelled: %v", err)
		return nil, err
	}

	batches := make([][]models.Article, 0, len(results))
	for _, res := range results {
		batches = append(batches, a.handle(log, res))
	}

	articles, err := Merge(batches, limit)
	if errors.Is(err, ErrNoArticles) {
		a.metrics.PipelineFinished("failure", time.Since(start))
		log.Error("No articles from any source")
		return nil, err
	}

	a.metrics.PipelineFinished("success", time.Since(start))
	log.WithField("articles", len(articles)).Info("News pipeline finished")
	return articles, nil
}
