// Package abc assigns the ABC+D category by cumulative share of real sales
// cost: the classic Pareto cut at 80/95 percent.
package abc

import (
	"sort"

	"github.com/jardineria-aranjuez/reposicion/internal/config"
	"github.com/jardineria-aranjuez/reposicion/internal/domain"
)

type Classifier struct {
	cutoffA float64
	cutoffB float64
}

func NewClassifier(cfg config.EngineConfig) *Classifier {
	return &Classifier{cutoffA: cfg.ABCCutoffA, cutoffB: cfg.ABCCutoffB}
}

// Classify sets Category and CumulativeSharePct in place on the given
// metrics. Articles with positive cost of goods sold are ranked descending
// by that value and cut at the cumulative thresholds; the boundary article
// that pushes the cumulative share past a cutoff stays in the lower
// category (inclusive comparison). Articles with zero qualifying value are
// category D unconditionally.
//
// The sort is stable, so equal-value articles keep their incoming relative
// order and repeated runs give identical assignments.
func (c *Classifier) Classify(articles []domain.ArticleMetrics) []domain.ArticleMetrics {
	qualifying := make([]int, 0, len(articles))
	var total float64
	for i := range articles {
		if articles[i].CostOfGoodsSold > 0 {
			qualifying = append(qualifying, i)
			total += articles[i].CostOfGoodsSold
		} else {
			articles[i].Category = domain.CategoryD
			articles[i].CumulativeSharePct = 0
		}
	}

	sort.SliceStable(qualifying, func(a, b int) bool {
		return articles[qualifying[a]].CostOfGoodsSold > articles[qualifying[b]].CostOfGoodsSold
	})

	var cumulative float64
	for _, idx := range qualifying {
		cumulative += articles[idx].CostOfGoodsSold / total * 100
		articles[idx].CumulativeSharePct = cumulative
		switch {
		case cumulative <= c.cutoffA:
			articles[idx].Category = domain.CategoryA
		case cumulative <= c.cutoffB:
			articles[idx].Category = domain.CategoryB
		default:
			articles[idx].Category = domain.CategoryC
		}
	}

	return articles
}

// Counts tallies articles per category, useful for the run summary and the
// degenerate-section check.
func Counts(articles []domain.ArticleMetrics) map[domain.Category]int {
	counts := make(map[domain.Category]int, 4)
	for i := range articles {
		counts[articles[i].Category]++
	}
	return counts
}
