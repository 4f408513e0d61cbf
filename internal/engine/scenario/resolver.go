// Package scenario maps an article's classification-phase state to one of
// the named scenarios and renders its recommended action. The decision
// surface is two lookup tables (templates.go), not control flow.
package scenario

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jardineria-aranjuez/reposicion/internal/domain"
)

// Resolve returns the scenario code for an article. Stocked-out articles get
// one of the 8 urgency codes; everything else lands on the in-stock grid.
func Resolve(m domain.ArticleMetrics) string {
	if m.StockFinal == 0 {
		return stockoutCode(m)
	}
	return inStockCode(m)
}

func stockoutCode(m domain.ArticleMetrics) string {
	var pctSinceSale float64
	if m.RotationTargetDays > 0 {
		pctSinceSale = float64(m.DaysSinceLastSale) / float64(m.RotationTargetDays) * 100
	}

	prefix := "26"
	if m.Category.IsTopTier() {
		prefix = "13"
	}

	for _, tier := range stockoutTiers {
		if pctSinceSale <= tier.MaxPct {
			return prefix + tier.Suffix
		}
	}
	return prefix + "D"
}

func inStockCode(m domain.ArticleMetrics) string {
	band := string(m.StockLevelBand)
	if band != string(domain.BandElevado) && band != string(domain.BandNormal) {
		band = string(domain.BandBajo)
	}
	risk := string(m.RiskLevel)
	if risk != string(domain.RiskCritico) && risk != string(domain.RiskAlto) && risk != string(domain.RiskMedio) {
		risk = string(domain.RiskBajo)
	}

	codes := inStockGrid[gridKey{Band: band, Risk: risk}]
	if m.Category.IsTopTier() {
		return codes.Top
	}
	return codes.Low
}

// Action renders the recommended action text for a resolved scenario code.
func Action(code string, m domain.ArticleMetrics) string {
	template, ok := actionTemplates[code]
	if !ok {
		return "Sin acción asignada"
	}

	targetHalfMin := atLeastOne(math.Round(m.StockMin * 0.5))
	targetGrow := atLeastOne(math.Round(m.StockFinal * 1.5))
	targetDouble := atLeastOne(math.Round(m.StockFinal * 2))
	capitalFreed := math.Round(m.StockFinal*m.UnitCost*0.7*100) / 100

	// The bespoke sentences need two quantities the generic placeholders
	// cannot express, so they are rebuilt whole.
	switch code {
	case "12":
		return fmt.Sprintf("AUMENTAR STOCK: Producto de alto interés. Incrementar compras 20%% próxima temporada. Stock actual: %d unidades. Stock objetivo: %d unidades. Maximizar disponibilidad.",
			int(m.StockFinal), targetGrow)
	case "13A":
		return fmt.Sprintf("URGENTE - REPOSICIÓN INMEDIATA: Producto de alta demanda agotado. Recompra prioritaria inmediata. Aumentar compras 40%%. Stock objetivo: %d unidades. Evitar futura ruptura.",
			targetDouble)
	case "13B":
		return fmt.Sprintf("REPOSICIÓN PRIORITARIA: Producto agotado con demanda reciente. Aumentar compras 25%%. Stock objetivo: %d unidades. Programar reposición para próxima semana.",
			targetGrow)
	case "25":
		return fmt.Sprintf("AUMENTAR STOCK: Producto de alto interés. Incrementar compras 30%% próxima temporada. Stock actual: %d unidades. Stock objetivo: %d unidades. Alta rotación confirmada.",
			int(m.StockFinal), targetGrow)
	case "26A":
		return fmt.Sprintf("URGENTE - RUPTURA DE STOCK: Producto de alta demanda agotado. Recompra inmediata prioritaria. Aumentar compras 50%%. Stock objetivo: %d unidades. Pérdida de ventas estimada.",
			targetDouble)
	case "26B":
		return fmt.Sprintf("RECOMPRA PRIORITARIA: Producto agotado con demanda reciente. Aumentar compras 30%%. Stock objetivo: %d unidades. Monitorear demanda próximas semanas.",
			targetGrow)
	}

	text := template
	text = strings.ReplaceAll(text, "[descuento]", strconv.Itoa(m.DiscountPct))
	text = strings.ReplaceAll(text, "[unidades]", strconv.Itoa(targetHalfMin))
	text = strings.ReplaceAll(text, "[X días]", strconv.Itoa(int(m.CoverageDays)))
	text = strings.ReplaceAll(text, "[importe]", strconv.FormatFloat(capitalFreed, 'f', -1, 64))
	return text
}

// Annotate resolves and renders in one pass, setting ScenarioCode and
// RecommendedAction on every article.
func Annotate(articles []domain.ArticleMetrics) []domain.ArticleMetrics {
	for i := range articles {
		code := Resolve(articles[i])
		articles[i].ScenarioCode = code
		articles[i].RecommendedAction = Action(code, articles[i])
	}
	return articles
}

func atLeastOne(v float64) int {
	if v < 1 {
		return 1
	}
	return int(v)
}
