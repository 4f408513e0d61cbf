package abc

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jardineria-aranjuez/reposicion/internal/config"
	"github.com/jardineria-aranjuez/reposicion/internal/domain"
)

func articlesWithCOGS(values ...float64) []domain.ArticleMetrics {
	out := make([]domain.ArticleMetrics, len(values))
	for i, v := range values {
		out[i] = domain.ArticleMetrics{
			Key:             domain.ArticleKey{Code: fmt.Sprintf("110000000%d", i)},
			CostOfGoodsSold: v,
		}
	}
	return out
}

func TestClassifyTenArticleDistribution(t *testing.T) {
	// 100..10 descending: total 550; cumulative crosses 80% after the
	// seventh article and 95% after the ninth.
	c := NewClassifier(config.DefaultEngineConfig())
	out := c.Classify(articlesWithCOGS(100, 90, 80, 70, 60, 50, 40, 30, 20, 10))

	var cumulative float64
	for i, m := range out {
		cumulative += m.CostOfGoodsSold / 550 * 100
		assert.InDelta(t, cumulative, m.CumulativeSharePct, 0.001, "article %d", i)
		switch {
		case cumulative <= 80:
			assert.Equal(t, domain.CategoryA, m.Category, "article %d", i)
		case cumulative <= 95:
			assert.Equal(t, domain.CategoryB, m.Category, "article %d", i)
		default:
			assert.Equal(t, domain.CategoryC, m.Category, "article %d", i)
		}
	}
}

func TestClassifyExhaustiveAndDisjoint(t *testing.T) {
	c := NewClassifier(config.DefaultEngineConfig())
	out := c.Classify(articlesWithCOGS(5, 0, 3, 0, 1, 8, 2))
	for _, m := range out {
		assert.True(t, m.Category.Valid(), "article %s got %q", m.Key.Code, m.Category)
	}
}

func TestClassifyZeroValueIsD(t *testing.T) {
	c := NewClassifier(config.DefaultEngineConfig())
	out := c.Classify(articlesWithCOGS(10, 0, -3))
	assert.Equal(t, domain.CategoryA, out[0].Category)
	assert.Equal(t, domain.CategoryD, out[1].Category)
	assert.Equal(t, domain.CategoryD, out[2].Category)
	assert.Zero(t, out[1].CumulativeSharePct)
}

func TestClassifySingleArticleCarriesFullShare(t *testing.T) {
	// A single article is 100% of the distribution, which lands past both
	// cutoffs under the inclusive comparison.
	c := NewClassifier(config.DefaultEngineConfig())
	out := c.Classify(articlesWithCOGS(42))
	require.Len(t, out, 1)
	assert.Equal(t, domain.CategoryC, out[0].Category)
	assert.InDelta(t, 100, out[0].CumulativeSharePct, 0.001)
}

func TestClassifyIdempotent(t *testing.T) {
	c := NewClassifier(config.DefaultEngineConfig())
	first := c.Classify(articlesWithCOGS(9, 7, 7, 5, 0))
	second := c.Classify(first)
	for i := range first {
		assert.Equal(t, first[i].Category, second[i].Category)
		assert.InDelta(t, first[i].CumulativeSharePct, second[i].CumulativeSharePct, 0.001)
	}
}

func TestClassifyStableForTies(t *testing.T) {
	c := NewClassifier(config.DefaultEngineConfig())
	out := c.Classify(articlesWithCOGS(5, 5, 5, 5))
	// Equal values keep their incoming order: cumulative 25/50/75/100.
	assert.Equal(t, domain.CategoryA, out[0].Category)
	assert.Equal(t, domain.CategoryA, out[1].Category)
	assert.Equal(t, domain.CategoryA, out[2].Category)
	assert.Equal(t, domain.CategoryC, out[3].Category)
}

func TestCounts(t *testing.T) {
	c := NewClassifier(config.DefaultEngineConfig())
	out := c.Classify(articlesWithCOGS(100, 1, 0))
	counts := Counts(out)
	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, len(out), total)
	assert.Equal(t, 1, counts[domain.CategoryD])
}
