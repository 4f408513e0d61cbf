package correction

import (
	"fmt"
	"math"

	"github.com/jardineria-aranjuez/reposicion/internal/domain"
)

// maxAlertSamples caps the article codes attached to an alert so the
// payload stays readable when a whole section trips the same condition.
const maxAlertSamples = 10

// Alerts scans a corrected batch for conditions a buyer should look at
// before signing the order.
func (e *Engine) Alerts(inputs []domain.CorrectionInput, results []domain.CorrectionResult) []domain.Alert {
	var critical, swings, stale []string

	for i, in := range inputs {
		r := results[i]
		if in.RealStockObserved <= e.cfg.StockAlertThreshold {
			critical = append(critical, in.Key.Code)
		}
		base := in.TheoreticalOrder
		if base == 0 {
			base = 1
		}
		if math.Abs(r.CorrectedOrder-in.TheoreticalOrder)/base > e.cfg.SwingAlertRatio {
			swings = append(swings, in.Key.Code)
		}
		if in.RealSales == 0 && in.RealStockObserved > 0 {
			stale = append(stale, in.Key.Code)
		}
	}

	var alerts []domain.Alert
	if len(critical) > 0 {
		alerts = append(alerts, domain.Alert{
			Type:     "STOCK_CRITICO",
			Severity: domain.SeverityHigh,
			Message:  fmt.Sprintf("%d artículos con stock crítico (≤ %.0f unidades)", len(critical), e.cfg.StockAlertThreshold),
			Articles: sample(critical),
		})
	}
	if len(swings) > 0 {
		alerts = append(alerts, domain.Alert{
			Type:     "CAMBIOS_SIGNIFICATIVOS",
			Severity: domain.SeverityMedium,
			Message:  fmt.Sprintf("%d artículos con corrección superior al %.0f%% del pedido teórico", len(swings), e.cfg.SwingAlertRatio*100),
			Articles: sample(swings),
		})
	}
	if len(stale) > 0 {
		alerts = append(alerts, domain.Alert{
			Type:     "SIN_VENTAS",
			Severity: domain.SeverityLow,
			Message:  fmt.Sprintf("%d artículos con stock y sin ventas en el período", len(stale)),
			Articles: sample(stale),
		})
	}
	return alerts
}

func sample(codes []string) []string {
	if len(codes) > maxAlertSamples {
		return codes[:maxAlertSamples]
	}
	return codes
}
