package correction

import (
	"math"

	"github.com/jardineria-aranjuez/reposicion/internal/domain"
)

// Summarize condenses a batch of corrections into the metrics row persisted
// and cached per (week, section).
func Summarize(inputs []domain.CorrectionInput, results []domain.CorrectionResult) domain.BatchMetrics {
	m := domain.BatchMetrics{
		TotalArticles:     len(results),
		ScenarioHistogram: make(map[string]int, len(results)),
	}
	for _, r := range results {
		m.UnitsTheoretical += r.TheoreticalOrder
		m.UnitsCorrected += r.CorrectedOrder
		if r.CorrectedOrder != r.TheoreticalOrder {
			m.CorrectedArticles++
		}
		m.ScenarioHistogram[r.ScenarioCode]++
	}
	m.UnitsDelta = m.UnitsCorrected - m.UnitsTheoretical
	if m.TotalArticles > 0 {
		m.CorrectedPct = round2(float64(m.CorrectedArticles) / float64(m.TotalArticles) * 100)
	}
	if m.UnitsTheoretical > 0 {
		m.ChangePct = round2(m.UnitsDelta / m.UnitsTheoretical * 100)
	}
	if p, ok := forecastPrecision(inputs); ok {
		m.ForecastPrecision = &p
	}
	return m
}

// forecastPrecision is total real sales over total target sales across the
// batch, as a percentage. Unknown when the batch sold nothing; a batch that
// sold with no targets set counts as exactly on target.
func forecastPrecision(inputs []domain.CorrectionInput) (float64, bool) {
	var real, target float64
	for _, in := range inputs {
		real += in.RealSales
		target += in.SalesTarget
	}
	if real <= 0 {
		return 0, false
	}
	if target <= 0 {
		return 100, true
	}
	return round2(real / target * 100), true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
