// Package correction reconciles the phase-1 theoretical order against the
// physically observed stock. One closed-form formula covers the whole
// scenario matrix:
//
//	corrected = max(0, theoretical + (minimum_stock − real_stock))
//
// The 3-axis diagnostic code is informational only; the formula never
// branches on it.
package correction

import (
	"fmt"
	"math"

	"github.com/jardineria-aranjuez/reposicion/internal/config"
	"github.com/jardineria-aranjuez/reposicion/internal/domain"
)

type Engine struct {
	cfg config.EngineConfig
}

func NewEngine(cfg config.EngineConfig) *Engine {
	if cfg.CoverageWeeks == nil {
		cfg.CoverageWeeks = config.DefaultEngineConfig().CoverageWeeks
	}
	return &Engine{cfg: cfg}
}

// StockGap is the signed distance from observed stock to the minimum target.
func StockGap(minimumStock, realStock float64) float64 {
	return minimumStock - realStock
}

// Apply runs the correction formula for a single article. The clamp to zero
// is skipped when negative orders are explicitly permitted.
func (e *Engine) Apply(theoretical, minimumStock, realStock float64) float64 {
	corrected := theoretical + StockGap(minimumStock, realStock)
	if e.cfg.AllowNegativeOrders {
		return corrected
	}
	return math.Max(0, corrected)
}

// MinimumStock resolves the minimum-stock target for a category from the
// weeks-of-coverage policy: category weeks × average weekly sales target, or
// × the theoretical order when no target is known.
func (e *Engine) MinimumStock(category domain.Category, weeklySalesTarget, theoretical float64) float64 {
	weeks, ok := e.cfg.CoverageWeeks[string(category)]
	if !ok {
		weeks = e.cfg.CoverageWeeks[string(domain.CategoryC)]
	}
	if weeklySalesTarget > 0 {
		return weeklySalesTarget * weeks
	}
	return theoretical * weeks
}

// Diagnose classifies the three correction axes independently and joins them
// into the audit code, e.g. "SUP_EXC_DEF". 27 combinations.
func Diagnose(in domain.CorrectionInput) string {
	var sales domain.SalesVsTarget
	switch {
	case in.RealSales > in.SalesTarget:
		sales = domain.SalesSuperior
	case in.RealSales < in.SalesTarget:
		sales = domain.SalesInferior
	default:
		sales = domain.SalesIgual
	}

	suggested := in.SuggestedReceipts
	var receipts domain.ReceiptsVsSuggested
	switch {
	case in.RealReceipts > suggested:
		receipts = domain.ReceiptsExceso
	case in.RealReceipts < suggested:
		receipts = domain.ReceiptsDefecto
	default:
		receipts = domain.ReceiptsIgual
	}

	var stock domain.StockVsMinimum
	switch {
	case in.RealStockObserved > in.MinimumStockTarget:
		stock = domain.StockExcedente
	case in.RealStockObserved < in.MinimumStockTarget:
		stock = domain.StockDeficit
	default:
		stock = domain.StockOptimo
	}

	return fmt.Sprintf("%s_%s_%s", string(sales)[:3], string(receipts)[:3], string(stock)[:3])
}

// Correct reconciles one article. SuggestedReceipts defaults to the
// theoretical order; the minimum stock target is derived from the coverage
// policy when the caller did not supply one.
func (e *Engine) Correct(in domain.CorrectionInput) domain.CorrectionResult {
	if in.MinimumStockTarget == 0 && in.Category != "" {
		in.MinimumStockTarget = e.MinimumStock(in.Category, in.SalesTarget, in.TheoreticalOrder)
	}
	if in.SuggestedReceipts == 0 {
		in.SuggestedReceipts = in.TheoreticalOrder
	}

	gap := StockGap(in.MinimumStockTarget, in.RealStockObserved)
	corrected := e.Apply(in.TheoreticalOrder, in.MinimumStockTarget, in.RealStockObserved)

	return domain.CorrectionResult{
		Key:                in.Key,
		TheoreticalOrder:   in.TheoreticalOrder,
		MinimumStockTarget: in.MinimumStockTarget,
		RealStockObserved:  in.RealStockObserved,
		StockGap:           gap,
		CorrectedOrder:     corrected,
		ScenarioCode:       Diagnose(in),
		CorrectionReason:   reason(in.MinimumStockTarget, in.RealStockObserved, corrected, in.TheoreticalOrder),
	}
}

// CorrectBatch reconciles every input and returns the results with their
// batch metrics and alerts. Per-article work never fails; there is nothing
// here that can abort the batch.
func (e *Engine) CorrectBatch(inputs []domain.CorrectionInput) ([]domain.CorrectionResult, domain.BatchMetrics, []domain.Alert) {
	results := make([]domain.CorrectionResult, len(inputs))
	for i, in := range inputs {
		results[i] = e.Correct(in)
	}
	return results, Summarize(inputs, results), e.Alerts(inputs, results)
}

// reason explains the applied correction from the sign of the stock gap.
func reason(minimumStock, realStock, corrected, theoretical float64) string {
	if corrected == theoretical {
		return "Sin corrección necesaria"
	}
	if realStock >= minimumStock {
		if realStock > minimumStock {
			excess := realStock - minimumStock
			return fmt.Sprintf("Reducir %.0f unidades (stock excedente)", excess)
		}
		return "Mantener pedido (stock óptimo)"
	}
	deficit := minimumStock - realStock
	return fmt.Sprintf("Aumentar %.0f unidades (recuperar stock mínimo)", deficit)
}
