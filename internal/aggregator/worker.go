package aggregator

import (
	"errors"

	"kaset_news/internal/fetcher"
	"kaset_news/internal/logger"
	"kaset_news/internal/metrics"
	"kaset_news/internal/models"
)

// handle turns one settled fetch into that source's articles. Failures are
// logged and counted here and never leave this function.
func (a *Aggregator) handle(log *logger.Entry, res fetcher.Result) []models.Article {
	log = log.WithFields(logger.Fields{
		"source": res.Source.Name,
		"url":    res.Source.URL,
	})

	if res.Err != nil {
		status := metrics.StatusTransport
		var statusErr *fetcher.StatusError
		if errors.As(res.Err, &statusErr) {
			status = metrics.StatusHTTPError
		}
		a.metrics.FeedFetched(res.Source.Name, status)
		log.Errorf("A feed failed to load: %v", res.Err)
		return nil
	}

	articles, err := a.parser.Decode(res.Body, res.Source.Name)
	if err != nil {
		a.metrics.FeedFetched(res.Source.Name, metrics.StatusParseError)
		log.Errorf("XML parse error for feed %s: %v", res.Source.Name, err)
		return nil
	}

	a.metrics.FeedFetched(res.Source.Name, metrics.StatusOK)
	a.metrics.ArticlesParsed(res.Source.Name, len(articles))
	log.WithField("items_count", len(articles)).Debug("Feed parsed")
	return articles
}
