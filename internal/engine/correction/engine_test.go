package correction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jardineria-aranjuez/reposicion/internal/config"
	"github.com/jardineria-aranjuez/reposicion/internal/domain"
)

func eng() *Engine {
	return NewEngine(config.DefaultEngineConfig())
}

func input(theoretical, minStock, realStock float64) domain.CorrectionInput {
	return domain.CorrectionInput{
		Key:                domain.ArticleKey{Code: "1101234567"},
		TheoreticalOrder:   theoretical,
		MinimumStockTarget: minStock,
		RealStockObserved:  realStock,
	}
}

func TestCorrectReferenceCases(t *testing.T) {
	cases := []struct {
		theoretical, minStock, realStock, want float64
	}{
		{10, 20, 30, 0},  // surplus absorbs everything
		{10, 20, 20, 10}, // unchanged
		{10, 20, 10, 20}, // deficit adds on top
	}
	for _, tc := range cases {
		r := eng().Correct(input(tc.theoretical, tc.minStock, tc.realStock))
		assert.Equal(t, tc.want, r.CorrectedOrder,
			"theoretical=%v min=%v real=%v", tc.theoretical, tc.minStock, tc.realStock)
		assert.Equal(t, tc.minStock-tc.realStock, r.StockGap)
	}
}

func TestCorrectClampsAtZero(t *testing.T) {
	r := eng().Correct(input(5, 10, 100))
	assert.Equal(t, 0.0, r.CorrectedOrder)
	assert.Equal(t, -90.0, r.StockGap)
}

func TestCorrectNegativeOrdersWhenPermitted(t *testing.T) {
	cfg := config.DefaultEngineConfig()
	cfg.AllowNegativeOrders = true
	r := NewEngine(cfg).Correct(input(5, 10, 100))
	assert.Equal(t, -85.0, r.CorrectedOrder)
}

func TestCorrectedOrderMonotonicInRealStock(t *testing.T) {
	e := eng()
	prev := e.Correct(input(10, 20, 0)).CorrectedOrder
	for realStock := 1.0; realStock <= 60; realStock++ {
		cur := e.Correct(input(10, 20, realStock)).CorrectedOrder
		assert.LessOrEqual(t, cur, prev, "realStock=%v", realStock)
		prev = cur
	}
}

func TestMinimumStockFromCoveragePolicy(t *testing.T) {
	e := eng()
	// Weekly sales target known: weeks × target.
	assert.Equal(t, 15.0, e.MinimumStock(domain.CategoryA, 10, 99))
	assert.Equal(t, 10.0, e.MinimumStock(domain.CategoryB, 10, 99))
	assert.Equal(t, 5.0, e.MinimumStock(domain.CategoryC, 10, 99))
	assert.Equal(t, 0.0, e.MinimumStock(domain.CategoryD, 10, 99))
	// No target: the theoretical order is the proxy.
	assert.Equal(t, 15.0, e.MinimumStock(domain.CategoryA, 0, 10))
}

func TestCorrectDerivesMinimumStockWhenMissing(t *testing.T) {
	in := domain.CorrectionInput{
		Key:              domain.ArticleKey{Code: "1101234567"},
		TheoreticalOrder: 10,
		Category:         domain.CategoryA,
		SalesTarget:      20,
	}
	r := eng().Correct(in)
	assert.Equal(t, 30.0, r.MinimumStockTarget) // 1.5 weeks × 20
	assert.Equal(t, 40.0, r.CorrectedOrder)     // 10 + (30 − 0)
}

func TestDiagnoseCodeShape(t *testing.T) {
	in := domain.CorrectionInput{
		TheoreticalOrder:   10,
		MinimumStockTarget: 20,
		RealStockObserved:  10,
		RealSales:          30,
		SalesTarget:        20,
		RealReceipts:       15,
		SuggestedReceipts:  10,
	}
	assert.Equal(t, "SUP_EXC_DEF", Diagnose(in))

	in.RealSales = 20
	in.RealReceipts = 10
	in.RealStockObserved = 20
	assert.Equal(t, "IGU_IGU_OPT", Diagnose(in))

	in.RealSales = 5
	in.RealReceipts = 2
	in.RealStockObserved = 99
	assert.Equal(t, "INF_DEF_EXC", Diagnose(in))
}

func TestDiagnoseCoversAllTwentySevenStates(t *testing.T) {
	seen := make(map[string]struct{})
	values := []float64{5, 10, 15} // below, equal, above the reference 10
	for _, sales := range values {
		for _, receipts := range values {
			for _, stock := range values {
				in := domain.CorrectionInput{
					SalesTarget:        10,
					RealSales:          sales,
					SuggestedReceipts:  10,
					RealReceipts:       receipts,
					MinimumStockTarget: 10,
					RealStockObserved:  stock,
				}
				seen[Diagnose(in)] = struct{}{}
			}
		}
	}
	assert.Len(t, seen, 27)
}

func TestCorrectionReasons(t *testing.T) {
	e := eng()

	r := e.Correct(input(10, 20, 20))
	assert.Equal(t, "Sin corrección necesaria", r.CorrectionReason)

	r = e.Correct(input(10, 20, 35))
	assert.Equal(t, "Reducir 15 unidades (stock excedente)", r.CorrectionReason)

	r = e.Correct(input(10, 20, 5))
	assert.Equal(t, "Aumentar 15 unidades (recuperar stock mínimo)", r.CorrectionReason)
}

func TestCorrectIsIdempotentOnResult(t *testing.T) {
	e := eng()
	first := e.Correct(input(10, 20, 5))
	second := e.Correct(input(10, 20, 5))
	require.Equal(t, first, second)
}
