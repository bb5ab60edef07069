package aggregator

import (
	"errors"
	"slices"

	"kaset_news/internal/models"
)

// ErrNoArticles means every source failed or returned an empty feed.
var ErrNoArticles = errors.New("no articles could be loaded from any source")

// Merge concatenates the per-source batches, ranks them newest first and
// keeps the first limit entries (limit <= 0 keeps everything). Inputs are not
// modified. Articles syndicated by several feeds are kept as duplicates.
func Merge(batches [][]models.Article, limit int) ([]models.Article, error) {
	total := 0
	for _, b := range batches {
		total += len(b)
	}
	if total == 0 {
		return nil, ErrNoArticles
	}

	merged := make([]models.Article, 0, total)
	for _, b := range batches {
		merged = append(merged, b...)
	}

	Rank(merged)

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

// Rank sorts by publish date, newest first. Undated articles carry the zero
// time and therefore end up last; equal dates keep their input order.
func Rank(articles []models.Article) {
	slices.SortStableFunc(articles, func(a, b models.Article) int {
		return b.Published.Compare(a.Published)
	})
}
