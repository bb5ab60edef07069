package aggregator_test

import (
	"testing"
	"time"

	"kaset_news/internal/aggregator"
	"kaset_news/internal/models"

	"github.com/stretchr/testify/require"
)

func dated(title string, day int) models.Article {
	return models.Article{
		Title:     title,
		GUID:      title,
		Published: time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
	}
}

func titles(articles []models.Article) []string {
	out := make([]string, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.Title)
	}
	return out
}

func TestMerge_SortsAcrossSources(t *testing.T) {
	batches := [][]models.Article{
		{dated("jan3", 3)},
		{dated("jan1", 1)},
		{dated("jan2", 2)},
	}

	got, err := aggregator.Merge(batches, 24)
	require.NoError(t, err)
	require.Equal(t, []string{"jan3", "jan2", "jan1"}, titles(got))
}

func TestMerge_Truncates(t *testing.T) {
	var a, b []models.Article
	for day := 1; day <= 5; day++ {
		a = append(a, dated("a"+string(rune('0'+day)), day))
		b = append(b, dated("b"+string(rune('0'+day)), day+5))
	}

	got, err := aggregator.Merge([][]models.Article{a, b}, 6)
	require.NoError(t, err)
	require.Len(t, got, 6)
	require.Equal(t, []string{"b5", "b4", "b3", "b2", "b1", "a5"}, titles(got))
}

func TestMerge_NoLimit(t *testing.T) {
	got, err := aggregator.Merge([][]models.Article{{dated("x", 1), dated("y", 2)}}, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestMerge_Empty(t *testing.T) {
	_, err := aggregator.Merge(nil, 6)
	require.ErrorIs(t, err, aggregator.ErrNoArticles)

	_, err = aggregator.Merge([][]models.Article{nil, {}, nil}, 6)
	require.ErrorIs(t, err, aggregator.ErrNoArticles)
}

func TestMerge_UndatedRankLast(t *testing.T) {
	undated := models.Article{Title: "undated", PublishedAt: "sometime"}
	got, err := aggregator.Merge([][]models.Article{{undated, dated("jan1", 1)}, {dated("jan2", 2)}}, 10)
	require.NoError(t, err)
	require.Equal(t, []string{"jan2", "jan1", "undated"}, titles(got))
}

func TestMerge_KeepsDuplicatesAndTieOrder(t *testing.T) {
	first := dated("same", 1)
	first.Source = "A"
	second := dated("same", 1)
	second.Source = "B"

	got, err := aggregator.Merge([][]models.Article{{first}, {second}}, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "A", got[0].Source)
	require.Equal(t, "B", got[1].Source)
	require.NotEqual(t, got[0].Key(), got[1].Key())
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	batch := []models.Article{dated("old", 1), dated("new", 2)}
	_, err := aggregator.Merge([][]models.Article{batch}, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"old", "new"}, titles(batch))
}
