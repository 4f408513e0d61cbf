package correction

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jardineria-aranjuez/reposicion/internal/domain"
)

func TestSummarizeBatch(t *testing.T) {
	e := eng()
	inputs := []domain.CorrectionInput{
		input(10, 20, 30), // corrected to 0
		input(10, 20, 20), // unchanged
		input(10, 20, 10), // corrected to 20
		input(0, 0, 0),    // unchanged at zero
	}
	results, batch, _ := e.CorrectBatch(inputs)
	require.Len(t, results, 4)

	assert.Equal(t, 4, batch.TotalArticles)
	assert.Equal(t, 2, batch.CorrectedArticles)
	assert.Equal(t, 50.0, batch.CorrectedPct)
	assert.Equal(t, 30.0, batch.UnitsTheoretical)
	assert.Equal(t, 30.0, batch.UnitsCorrected) // 0 + 10 + 20 + 0
	assert.Equal(t, 0.0, batch.UnitsDelta)
	assert.Equal(t, 0.0, batch.ChangePct)
	assert.Nil(t, batch.ForecastPrecision) // nothing sold in the batch

	total := 0
	for _, n := range batch.ScenarioHistogram {
		total += n
	}
	assert.Equal(t, 4, total)
}

func summarized(inputs []domain.CorrectionInput) domain.BatchMetrics {
	results := make([]domain.CorrectionResult, len(inputs))
	for i, in := range inputs {
		results[i] = eng().Correct(in)
	}
	return Summarize(inputs, results)
}

func TestSummarizeForecastPrecision(t *testing.T) {
	// Totals run over every article, targetless rows included.
	batch := summarized([]domain.CorrectionInput{
		{TheoreticalOrder: 5, RealSales: 8, SalesTarget: 10},
		{TheoreticalOrder: 5, RealSales: 10, SalesTarget: 10},
		{TheoreticalOrder: 5, RealSales: 3},
	})
	require.NotNil(t, batch.ForecastPrecision)
	assert.InDelta(t, 105.0, *batch.ForecastPrecision, 0.001) // 21/20
}

func TestSummarizeForecastPrecisionWithoutTargets(t *testing.T) {
	// Sales with no targets anywhere count as exactly on target.
	batch := summarized([]domain.CorrectionInput{
		{TheoreticalOrder: 5, RealSales: 4},
		{TheoreticalOrder: 5, RealSales: 2},
	})
	require.NotNil(t, batch.ForecastPrecision)
	assert.InDelta(t, 100.0, *batch.ForecastPrecision, 0.001)
}

func TestSummarizeForecastPrecisionUnknownWhenNothingSold(t *testing.T) {
	batch := summarized([]domain.CorrectionInput{
		{TheoreticalOrder: 5, SalesTarget: 10},
	})
	assert.Nil(t, batch.ForecastPrecision)
}

func TestSummarizeEmptyBatch(t *testing.T) {
	batch := Summarize(nil, nil)
	assert.Zero(t, batch.TotalArticles)
	assert.Zero(t, batch.CorrectedPct)
	assert.Nil(t, batch.ForecastPrecision)
}

func TestAlertsCriticalStock(t *testing.T) {
	e := eng()
	inputs := []domain.CorrectionInput{
		{Key: domain.ArticleKey{Code: "A1"}, TheoreticalOrder: 5, RealStockObserved: 0, RealSales: 2},
		{Key: domain.ArticleKey{Code: "A2"}, TheoreticalOrder: 5, RealStockObserved: 4, RealSales: 2, MinimumStockTarget: 4},
	}
	_, _, alerts := e.CorrectBatch(inputs)

	var critical *domain.Alert
	for i := range alerts {
		if alerts[i].Type == "STOCK_CRITICO" {
			critical = &alerts[i]
		}
	}
	require.NotNil(t, critical)
	assert.Equal(t, domain.SeverityHigh, critical.Severity)
	assert.Equal(t, []string{"A1"}, critical.Articles)
}

func TestAlertsSignificantSwing(t *testing.T) {
	e := eng()
	// Correction doubles the order: |20−10|/10 = 1.0 > 0.5.
	inputs := []domain.CorrectionInput{
		{Key: domain.ArticleKey{Code: "S1"}, TheoreticalOrder: 10, MinimumStockTarget: 20, RealStockObserved: 10, RealSales: 1},
	}
	_, _, alerts := e.CorrectBatch(inputs)

	found := false
	for _, a := range alerts {
		if a.Type == "CAMBIOS_SIGNIFICATIVOS" {
			found = true
			assert.Equal(t, domain.SeverityMedium, a.Severity)
			assert.Contains(t, a.Articles, "S1")
		}
	}
	assert.True(t, found)
}

func TestAlertsSwingWithZeroTheoretical(t *testing.T) {
	e := eng()
	// Zero theoretical order: the divisor falls back to 1 instead of
	// dividing by zero.
	inputs := []domain.CorrectionInput{
		{Key: domain.ArticleKey{Code: "Z1"}, TheoreticalOrder: 0, MinimumStockTarget: 5, RealStockObserved: 1, RealSales: 1},
	}
	_, _, alerts := e.CorrectBatch(inputs)

	found := false
	for _, a := range alerts {
		if a.Type == "CAMBIOS_SIGNIFICATIVOS" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAlertsDeadStock(t *testing.T) {
	e := eng()
	inputs := []domain.CorrectionInput{
		{Key: domain.ArticleKey{Code: "D1"}, TheoreticalOrder: 0, RealStockObserved: 7, RealSales: 0},
	}
	_, _, alerts := e.CorrectBatch(inputs)

	found := false
	for _, a := range alerts {
		if a.Type == "SIN_VENTAS" {
			found = true
			assert.Equal(t, domain.SeverityLow, a.Severity)
			assert.Equal(t, []string{"D1"}, a.Articles)
		}
	}
	assert.True(t, found)
}

func TestAlertSamplesCappedAtTen(t *testing.T) {
	e := eng()
	inputs := make([]domain.CorrectionInput, 25)
	for i := range inputs {
		inputs[i] = domain.CorrectionInput{
			Key:               domain.ArticleKey{Code: fmt.Sprintf("C%02d", i)},
			TheoreticalOrder:  5,
			RealStockObserved: 0,
			RealSales:         1,
		}
	}
	_, _, alerts := e.CorrectBatch(inputs)

	for _, a := range alerts {
		if a.Type == "STOCK_CRITICO" {
			assert.Contains(t, a.Message, "25 artículos")
			assert.Len(t, a.Articles, 10)
		}
	}
}

func TestNoAlertsOnHealthyBatch(t *testing.T) {
	e := eng()
	inputs := []domain.CorrectionInput{
		{Key: domain.ArticleKey{Code: "H1"}, TheoreticalOrder: 10, MinimumStockTarget: 10, RealStockObserved: 10, RealSales: 5},
	}
	_, _, alerts := e.CorrectBatch(inputs)
	assert.Empty(t, alerts)
}
