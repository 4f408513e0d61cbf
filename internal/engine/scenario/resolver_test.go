package scenario

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jardineria-aranjuez/reposicion/internal/domain"
)

func inStock(band domain.StockBand, risk domain.RiskLevel, cat domain.Category) domain.ArticleMetrics {
	return domain.ArticleMetrics{
		Key:            domain.ArticleKey{Code: "1101234567"},
		StockFinal:     10,
		StockLevelBand: band,
		RiskLevel:      risk,
		Category:       cat,
	}
}

func stockout(daysSinceSale, rotation int, cat domain.Category) domain.ArticleMetrics {
	return domain.ArticleMetrics{
		Key:                domain.ArticleKey{Code: "1101234567"},
		StockFinal:         0,
		DaysSinceLastSale:  daysSinceSale,
		RotationTargetDays: rotation,
		Category:           cat,
	}
}

func TestResolveInStockGrid(t *testing.T) {
	cases := []struct {
		band domain.StockBand
		risk domain.RiskLevel
		top  string
		low  string
	}{
		{domain.BandElevado, domain.RiskCritico, "1", "14"},
		{domain.BandElevado, domain.RiskAlto, "2", "15"},
		{domain.BandElevado, domain.RiskMedio, "3", "16"},
		{domain.BandElevado, domain.RiskBajo, "4", "17"},
		{domain.BandNormal, domain.RiskCritico, "5", "18"},
		{domain.BandNormal, domain.RiskAlto, "6", "19"},
		{domain.BandNormal, domain.RiskMedio, "7", "20"},
		{domain.BandNormal, domain.RiskBajo, "8", "21"},
		{domain.BandBajo, domain.RiskCritico, "9", "22"},
		{domain.BandBajo, domain.RiskAlto, "10", "23"},
		{domain.BandBajo, domain.RiskMedio, "11", "24"},
		{domain.BandBajo, domain.RiskBajo, "12", "25"},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s_%s", tc.band, tc.risk), func(t *testing.T) {
			assert.Equal(t, tc.top, Resolve(inStock(tc.band, tc.risk, domain.CategoryA)))
			assert.Equal(t, tc.top, Resolve(inStock(tc.band, tc.risk, domain.CategoryB)))
			assert.Equal(t, tc.low, Resolve(inStock(tc.band, tc.risk, domain.CategoryC)))
			assert.Equal(t, tc.low, Resolve(inStock(tc.band, tc.risk, domain.CategoryD)))
		})
	}
}

func TestResolveStockoutTiers(t *testing.T) {
	// Rotation 100 days makes the percentage equal the day count.
	cases := []struct {
		days   int
		suffix string
	}{
		{10, "A"},
		{24, "A"}, // boundary stays in the lower tier
		{25, "B"},
		{50, "B"},
		{51, "C"},
		{100, "C"},
		{101, "D"},
	}
	for _, tc := range cases {
		assert.Equal(t, "13"+tc.suffix, Resolve(stockout(tc.days, 100, domain.CategoryA)), "days=%d top", tc.days)
		assert.Equal(t, "26"+tc.suffix, Resolve(stockout(tc.days, 100, domain.CategoryC)), "days=%d low", tc.days)
	}
}

func TestResolveStockoutZeroRotation(t *testing.T) {
	// No rotation target: percentage collapses to 0, the most urgent tier.
	assert.Equal(t, "13A", Resolve(stockout(40, 0, domain.CategoryB)))
	assert.Equal(t, "26A", Resolve(stockout(40, 0, domain.CategoryD)))
}

func TestEveryCodeHasAnAction(t *testing.T) {
	codes := Codes()
	require.Len(t, codes, 32)
	m := inStock(domain.BandNormal, domain.RiskMedio, domain.CategoryA)
	m.StockMin = 8
	m.CoverageDays = 12
	m.UnitCost = 2.5
	for _, code := range codes {
		text := Action(code, m)
		assert.NotEmpty(t, text, "code %s", code)
		assert.NotEqual(t, "Sin acción asignada", text, "code %s", code)
		assert.NotContains(t, text, "[descuento]", "code %s", code)
		assert.NotContains(t, text, "[unidades]", "code %s", code)
		assert.NotContains(t, text, "[X días]", "code %s", code)
		assert.NotContains(t, text, "[importe]", "code %s", code)
	}
}

func TestActionPlaceholderSubstitution(t *testing.T) {
	m := inStock(domain.BandElevado, domain.RiskCritico, domain.CategoryA)
	m.DiscountPct = 30
	m.StockMin = 10 // half = 5

	text := Action("1", m)
	assert.Contains(t, text, "descuento 30%")
	assert.Contains(t, text, "Stock objetivo: 5 unidades")
}

func TestActionCapitalFreed(t *testing.T) {
	m := inStock(domain.BandElevado, domain.RiskCritico, domain.CategoryC)
	m.StockFinal = 10
	m.UnitCost = 3
	m.DiscountPct = 30

	// 10 × 3 × 0.7 = 21€ recoverable at liquidation.
	text := Action("14", m)
	assert.Contains(t, text, "21€")
}

func TestActionBespokeSentences(t *testing.T) {
	m := inStock(domain.BandBajo, domain.RiskBajo, domain.CategoryA)
	m.StockFinal = 10

	text := Action("12", m)
	assert.Contains(t, text, "Stock actual: 10 unidades")
	assert.Contains(t, text, "Stock objetivo: 15 unidades") // 10 × 1.5

	so := stockout(5, 100, domain.CategoryA)
	so.StockFinal = 4
	assert.Contains(t, Action("13A", so), "Stock objetivo: 8 unidades") // 4 × 2
	assert.Contains(t, Action("13B", so), "Stock objetivo: 6 unidades") // 4 × 1.5
}

func TestActionTargetsNeverZero(t *testing.T) {
	so := stockout(5, 100, domain.CategoryC)
	// Everything at zero still recommends at least one unit.
	for _, code := range []string{"26A", "26B", "26C", "26D"} {
		text := Action(code, so)
		assert.NotContains(t, text, ": 0 unidades", "code %s", code)
	}
}

func TestAnnotateSetsCodeAndAction(t *testing.T) {
	articles := []domain.ArticleMetrics{
		inStock(domain.BandNormal, domain.RiskBajo, domain.CategoryA),
		stockout(10, 100, domain.CategoryC),
	}
	out := Annotate(articles)
	require.Len(t, out, 2)
	assert.Equal(t, "8", out[0].ScenarioCode)
	assert.True(t, strings.HasPrefix(out[0].RecommendedAction, "MANTENER ESTRATEGIA ACTUAL"))
	assert.Equal(t, "26A", out[1].ScenarioCode)
	assert.NotEmpty(t, out[1].RecommendedAction)
}
