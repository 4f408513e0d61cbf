// Package metrics derives the per-article inventory metrics for one analysis
// window: final stock, sale rate, stock age, rotation consumption, risk level
// and stock band. Pure computation over pre-filtered record sets.
package metrics

import (
	"fmt"
	"sort"
	"time"

	"github.com/jardineria-aranjuez/reposicion/internal/catalog"
	"github.com/jardineria-aranjuez/reposicion/internal/config"
	"github.com/jardineria-aranjuez/reposicion/internal/domain"
)

// Window is the analysis period the input tables were filtered to.
type Window struct {
	Start time.Time
	End   time.Time
}

// Days returns the inclusive length of the window in days.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// Calculator computes ArticleMetrics for a section's input tables.
type Calculator struct {
	cfg config.EngineConfig
}

func NewCalculator(cfg config.EngineConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// accumulator collects the per-key sums before the derived metrics pass.
type accumulator struct {
	purchases     []domain.PurchaseRecord
	purchaseUnits float64

	unitsSold float64
	amount    float64
	profit    float64
	cost      float64
	lastSale  time.Time
	hasSale   bool

	stockInitial float64
	unitCost     float64
	hasStock     bool
}

// Calculate produces one ArticleMetrics per distinct ArticleKey present in
// the union of the three input tables. A malformed or incomplete record
// degrades to zero-filled fields for that article; it never aborts the batch.
func (c *Calculator) Calculate(purchases []domain.PurchaseRecord, sales []domain.SaleRecord, stock []domain.StockRecord, window Window) []domain.ArticleMetrics {
	acc := make(map[domain.ArticleKey]*accumulator)
	get := func(key domain.ArticleKey) *accumulator {
		a, ok := acc[key]
		if !ok {
			a = &accumulator{}
			acc[key] = a
		}
		return a
	}

	for _, p := range purchases {
		a := get(p.Key)
		a.purchases = append(a.purchases, p)
		a.purchaseUnits += p.Units
	}
	for _, s := range sales {
		a := get(s.Key)
		a.unitsSold += s.Units
		a.amount += s.Amount
		a.profit += s.Profit
		a.cost += s.Cost
		if !a.hasSale || s.Date.After(a.lastSale) {
			a.lastSale = s.Date
			a.hasSale = true
		}
	}
	for _, s := range stock {
		a := get(s.Key)
		a.stockInitial += s.Units
		if !a.hasStock {
			a.unitCost = s.UnitCost
			a.hasStock = true
		}
	}

	keys := make([]domain.ArticleKey, 0, len(acc))
	for key := range acc {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Size != b.Size {
			return a.Size < b.Size
		}
		return a.Color < b.Color
	})

	out := make([]domain.ArticleMetrics, 0, len(keys))
	for _, key := range keys {
		out = append(out, c.compute(key, acc[key], window))
	}
	return out
}

func (c *Calculator) compute(key domain.ArticleKey, a *accumulator, window Window) domain.ArticleMetrics {
	familyKey, family := catalog.FamilyOf(key.Code)
	windowDays := window.Days()

	m := domain.ArticleMetrics{
		Key:                key,
		FamilyKey:          familyKey,
		FamilyName:         family.Name,
		RotationTargetDays: family.RotationDays,
		StockInitial:       a.stockInitial,
		PurchasesPeriod:    a.purchaseUnits,
		UnitsSold:          a.unitsSold,
		SalesAmount:        a.amount,
		ProfitAmount:       a.profit,
		CostOfGoodsSold:    a.cost,
		UnitCost:           a.unitCost,
	}

	m.StockFinal = a.stockInitial + a.purchaseUnits - a.unitsSold

	available := a.stockInitial + a.purchaseUnits
	if available > 0 {
		m.SaleRatePct = a.unitsSold / available * 100
	}

	m.StockAgeDays, m.StockOrigin = c.stockAge(a, m.StockFinal, window)

	if m.StockFinal > 0 && family.RotationDays > 0 {
		m.PctRotationConsumed = float64(m.StockAgeDays) / float64(family.RotationDays) * 100
	}

	m.DiscountPct = c.discountFor(m.PctRotationConsumed)
	m.RiskLevel = c.riskFor(a.unitsSold, m.StockFinal, m.PctRotationConsumed)

	if a.hasSale {
		m.DaysSinceLastSale = daysBetween(a.lastSale, window.End)
	} else {
		m.DaysSinceLastSale = windowDays
	}

	if m.DaysSinceLastSale > family.RotationDays && m.StockFinal > 0 {
		m.ExceededRotation = m.StockFinal
	}

	m.StockLevelBand = bandFor(m.StockFinal, a.unitsSold)

	dailyAvg := 0.0
	if windowDays > 0 {
		dailyAvg = a.unitsSold / float64(windowDays)
	}
	m.StockMin = dailyAvg * minCoverageFactor(family.RotationDays)
	m.StockMax = dailyAvg * maxCoverageFactor(family.RotationDays)
	if dailyAvg > 0 {
		m.CoverageDays = m.StockFinal / dailyAvg
	}

	return m
}

// stockAge implements the consumed-since-initial walk over purchases. When
// the remaining stock predates all in-window purchases the age is the whole
// window; otherwise it is tied to the purchase that closed the consumption
// gap, falling back to the last purchase when the walk never closes it.
func (c *Calculator) stockAge(a *accumulator, stockFinal float64, window Window) (int, string) {
	if stockFinal <= 0 {
		return 0, "Sin stock"
	}
	if a.stockInitial-a.unitsSold > 0 {
		return window.Days(), "Stock inicial"
	}

	ordered := make([]domain.PurchaseRecord, len(a.purchases))
	copy(ordered, a.purchases)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	consumed := a.stockInitial + a.purchaseUnits - stockFinal
	var covered float64
	for _, p := range ordered {
		covered += p.Units
		if covered >= consumed {
			return daysBetween(p.Date, window.End), "Compra " + p.Date.Format("02/01/2006")
		}
	}
	if len(ordered) > 0 {
		last := ordered[len(ordered)-1]
		return daysBetween(last.Date, window.End), "Compra " + last.Date.Format("02/01/2006")
	}
	return window.Days(), "Stock inicial"
}

func (c *Calculator) discountFor(pctRotation float64) int {
	switch {
	case pctRotation <= c.cfg.RotationThresholdLow:
		return c.cfg.DiscountTiers[0]
	case pctRotation <= c.cfg.RotationThresholdMid:
		return c.cfg.DiscountTiers[1]
	case pctRotation <= c.cfg.RotationThresholdHigh:
		return c.cfg.DiscountTiers[2]
	default:
		return c.cfg.DiscountTiers[3]
	}
}

// riskFor is a pure function of (no sales, final stock, % rotation consumed).
func (c *Calculator) riskFor(unitsSold, stockFinal, pctRotation float64) domain.RiskLevel {
	if stockFinal == 0 {
		return domain.RiskCero
	}
	if unitsSold == 0 {
		return domain.RiskCritico
	}
	switch {
	case pctRotation <= c.cfg.RotationThresholdLow:
		return domain.RiskBajo
	case pctRotation <= c.cfg.RotationThresholdMid:
		return domain.RiskMedio
	case pctRotation <= c.cfg.RotationThresholdHigh:
		return domain.RiskAlto
	default:
		return domain.RiskCritico
	}
}

// bandFor grades final stock against half the monthly average demand.
func bandFor(stockFinal, unitsSold float64) domain.StockBand {
	halfMonthly := unitsSold / 2
	switch {
	case stockFinal == 0:
		return domain.BandCero
	case stockFinal <= halfMonthly*0.5:
		return domain.BandBajo
	case stockFinal <= halfMonthly:
		return domain.BandNormal
	default:
		return domain.BandElevado
	}
}

// The minimum/maximum stock ladders are keyed by the family rotation period.
func minCoverageFactor(rotationDays int) float64 {
	switch rotationDays {
	case 7:
		return 3.5
	case 15:
		return 7.5
	case 30:
		return 15
	case 60:
		return 30
	default:
		return 45
	}
}

func maxCoverageFactor(rotationDays int) float64 {
	switch rotationDays {
	case 7:
		return 10.5
	case 15:
		return 22.5
	case 30:
		return 45
	case 60:
		return 90
	default:
		return 135
	}
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// String implements a compact debug representation used by trace logging.
func (w Window) String() string {
	return fmt.Sprintf("%s..%s (%d days)", w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"), w.Days())
}
