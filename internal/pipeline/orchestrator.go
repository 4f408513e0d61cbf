// Package pipeline runs the weekly engine: loads the exports once, fans out
// per warehouse section, and composes metrics → classification → scenario →
// correction into a SectionResult per section. Sections are independent, so
// they run in parallel; a failing section degrades to a diagnostic instead
// of aborting the week.
package pipeline

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jardineria-aranjuez/reposicion/internal/catalog"
	"github.com/jardineria-aranjuez/reposicion/internal/config"
	"github.com/jardineria-aranjuez/reposicion/internal/domain"
	"github.com/jardineria-aranjuez/reposicion/internal/engine/abc"
	"github.com/jardineria-aranjuez/reposicion/internal/engine/correction"
	"github.com/jardineria-aranjuez/reposicion/internal/engine/metrics"
	"github.com/jardineria-aranjuez/reposicion/internal/engine/scenario"
	"github.com/jardineria-aranjuez/reposicion/internal/loader"
	"github.com/jardineria-aranjuez/reposicion/internal/state"
)

// Request bundles everything one run needs. StockLedger seeds each article's
// initial stock from the previous run; nil means a cold start where the
// snapshot is taken as both initial and final.
type Request struct {
	Week        int
	Year        int
	Window      metrics.Window
	Purchases   []domain.PurchaseRecord
	Sales       []domain.SaleRecord
	Stock       []domain.StockRecord
	StockLedger map[string]float64
	Sections    []string // empty means every known section
	Parallelism int      // ≤0 means one goroutine per section
}

type Orchestrator struct {
	cfg        config.EngineConfig
	calculator *metrics.Calculator
	classifier *abc.Classifier
	corrector  *correction.Engine
}

func NewOrchestrator(cfg config.EngineConfig) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		calculator: metrics.NewCalculator(cfg),
		classifier: abc.NewClassifier(cfg),
		corrector:  correction.NewEngine(cfg),
	}
}

// Run executes the full two-phase engine for every requested section and
// returns results ordered by section name. Only a context cancellation can
// make it return an error; per-section problems surface as diagnostics on
// the affected section.
func (o *Orchestrator) Run(ctx context.Context, req Request) ([]domain.SectionResult, error) {
	sections := req.Sections
	if len(sections) == 0 {
		sections = catalog.SectionNames()
	}

	results := make([]domain.SectionResult, len(sections))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	if req.Parallelism > 0 {
		g.SetLimit(req.Parallelism)
	}
	for i, section := range sections {
		i, section := i, section
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			res := o.runSection(section, req)
			mu.Lock()
			results[i] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(a, b int) bool { return results[a].Section < results[b].Section })
	return results, nil
}

// runSection never returns an error: anything that prevents real output is
// recorded as a diagnostic so the rest of the week still ships.
func (o *Orchestrator) runSection(section string, req Request) domain.SectionResult {
	res := domain.SectionResult{Section: section, Week: req.Week}

	purchases := loader.FilterSection(req.Purchases, section, func(r domain.PurchaseRecord) domain.ArticleKey { return r.Key })
	sales := loader.FilterSection(req.Sales, section, func(r domain.SaleRecord) domain.ArticleKey { return r.Key })
	stock := loader.FilterSection(req.Stock, section, func(r domain.StockRecord) domain.ArticleKey { return r.Key })

	if len(sales) == 0 && len(stock) == 0 {
		err := &domain.MissingInputError{Section: section, Table: "ventas/stock"}
		res.Diagnostics = append(res.Diagnostics, err.Error())
		log.Warn().Str("section", section).Msg("section skipped, no input rows")
		return res
	}

	stock = applyLedger(stock, req.StockLedger)

	articles := o.calculator.Calculate(purchases, sales, stock, req.Window)
	articles = o.classifier.Classify(articles)
	if degenerate(articles) {
		warn := &domain.DegenerateCategoryWarning{Section: section}
		res.Diagnostics = append(res.Diagnostics, warn.Error())
		log.Warn().Str("section", section).Msg(warn.Error())
	}
	articles = scenario.Annotate(articles)
	res.Articles = articles

	inputs := BuildCorrectionInputs(articles, stock, req.Window)
	res.Corrections, res.Batch, res.Alerts = o.corrector.CorrectBatch(inputs)

	log.Info().
		Str("section", section).
		Int("articles", len(articles)).
		Int("corrected", res.Batch.CorrectedArticles).
		Float64("units_delta", res.Batch.UnitsDelta).
		Msg("section processed")
	return res
}

// BuildCorrectionInputs derives phase-2 inputs from phase-1 metrics plus the
// observed stock snapshot. The theoretical order is the distance from final
// stock up to the band minimum; the weekly sales target is the window's
// average weekly demand.
func BuildCorrectionInputs(articles []domain.ArticleMetrics, observed []domain.StockRecord, window metrics.Window) []domain.CorrectionInput {
	observedByKey := make(map[domain.ArticleKey]float64, len(observed))
	for _, s := range observed {
		observedByKey[s.Key] += s.Units
	}

	weeks := float64(window.Days()) / 7
	inputs := make([]domain.CorrectionInput, 0, len(articles))
	for _, a := range articles {
		realStock, ok := observedByKey[a.Key]
		if !ok {
			realStock = a.StockFinal
		}
		var weeklySales float64
		if weeks > 0 {
			weeklySales = a.UnitsSold / weeks
		}
		inputs = append(inputs, domain.CorrectionInput{
			Key:               a.Key,
			TheoreticalOrder:  math.Max(0, math.Round(a.StockMin-a.StockFinal)),
			RealStockObserved: realStock,
			Category:          a.Category,
			RealSales:         a.UnitsSold,
			SalesTarget:       weeklySales,
			RealReceipts:      a.PurchasesPeriod,
		})
	}
	return inputs
}

// applyLedger overrides each snapshot line's units with the carried stock
// from the previous run, when present. Snapshot-only articles pass through.
func applyLedger(stock []domain.StockRecord, ledger map[string]float64) []domain.StockRecord {
	if len(ledger) == 0 {
		return stock
	}
	out := make([]domain.StockRecord, len(stock))
	for i, s := range stock {
		if units, ok := ledger[state.LedgerKey(s.Key)]; ok {
			s.Units = units
		}
		out[i] = s
	}
	return out
}

// degenerate reports a section with zero qualifying-value articles: every
// article classified D. A valid outcome, but usually an upstream data gap.
func degenerate(articles []domain.ArticleMetrics) bool {
	if len(articles) == 0 {
		return false
	}
	for _, a := range articles {
		if a.Category != domain.CategoryD {
			return false
		}
	}
	return true
}

// Describe renders a one-line run header for logs.
func Describe(req Request) string {
	return fmt.Sprintf("semana %d/%d ventana %s", req.Week, req.Year, req.Window)
}
