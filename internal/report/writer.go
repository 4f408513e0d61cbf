// Package report writes the run outputs: the corrected order CSV the buyers
// load back into the ERP, the per-section metrics CSV and a JSON run summary.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jardineria-aranjuez/reposicion/internal/domain"
)

type Writer struct {
	outputDir string
}

func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

func (w *Writer) runDir(week, year int) string {
	return filepath.Join(w.outputDir, fmt.Sprintf("%d", year), fmt.Sprintf("semana_%02d", week))
}

// WriteOrders emits one corrected-order CSV per section, named
// pedido_<section>_semana_<week>.csv.
func (w *Writer) WriteOrders(week, year int, results []domain.SectionResult) error {
	dir := w.runDir(week, year)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, res := range results {
		path := filepath.Join(dir, fmt.Sprintf("pedido_%s_semana_%02d.csv", res.Section, week))
		if err := writeOrderFile(path, res); err != nil {
			return fmt.Errorf("write order for %s: %w", res.Section, err)
		}
	}
	return nil
}

func writeOrderFile(path string, res domain.SectionResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	header := []string{
		"codigo", "descripcion", "talla", "color",
		"pedido_teorico", "stock_minimo", "stock_real",
		"pedido_corregido", "escenario", "motivo",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, c := range res.Corrections {
		rec := []string{
			c.Key.Code, c.Key.Name, c.Key.Size, c.Key.Color,
			formatUnits(c.TheoreticalOrder),
			formatUnits(c.MinimumStockTarget),
			formatUnits(c.RealStockObserved),
			formatUnits(c.CorrectedOrder),
			c.ScenarioCode,
			c.CorrectionReason,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	return cw.Error()
}

// WriteMetrics emits a per-article metrics CSV per section for audit.
func (w *Writer) WriteMetrics(week, year int, results []domain.SectionResult) error {
	dir := w.runDir(week, year)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, res := range results {
		path := filepath.Join(dir, fmt.Sprintf("metricas_%s_semana_%02d.csv", res.Section, week))
		if err := writeMetricsFile(path, res); err != nil {
			return fmt.Errorf("write metrics for %s: %w", res.Section, err)
		}
	}
	return nil
}

func writeMetricsFile(path string, res domain.SectionResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	header := []string{
		"codigo", "descripcion", "familia", "rotacion_objetivo",
		"stock_inicial", "compras", "unidades_vendidas", "stock_final",
		"tasa_venta_pct", "antiguedad_stock", "origen_stock",
		"pct_rotacion_consumida", "descuento_pct", "riesgo", "nivel_stock",
		"dias_sin_venta", "stock_min", "stock_max", "cobertura_dias",
		"categoria", "escenario", "accion_recomendada",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, a := range res.Articles {
		rec := []string{
			a.Key.Code, a.Key.Name, a.FamilyName, strconv.Itoa(a.RotationTargetDays),
			formatUnits(a.StockInitial), formatUnits(a.PurchasesPeriod),
			formatUnits(a.UnitsSold), formatUnits(a.StockFinal),
			formatFloat(a.SaleRatePct), strconv.Itoa(a.StockAgeDays), a.StockOrigin,
			formatFloat(a.PctRotationConsumed), strconv.Itoa(a.DiscountPct),
			string(a.RiskLevel), string(a.StockLevelBand),
			strconv.Itoa(a.DaysSinceLastSale),
			formatFloat(a.StockMin), formatFloat(a.StockMax), formatFloat(a.CoverageDays),
			string(a.Category), a.ScenarioCode, a.RecommendedAction,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	return cw.Error()
}

// Summary is the JSON document describing one complete run across sections.
type Summary struct {
	Week        int                            `json:"week"`
	Year        int                            `json:"year"`
	GeneratedAt time.Time                      `json:"generated_at"`
	Sections    map[string]domain.BatchMetrics `json:"sections"`
	Alerts      map[string][]domain.Alert      `json:"alerts,omitempty"`
	Diagnostics map[string][]string            `json:"diagnostics,omitempty"`
}

// WriteSummary emits resumen_semana_<week>.json next to the order files.
func (w *Writer) WriteSummary(week, year int, results []domain.SectionResult) (string, error) {
	dir := w.runDir(week, year)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	s := Summary{
		Week:        week,
		Year:        year,
		GeneratedAt: time.Now().UTC(),
		Sections:    make(map[string]domain.BatchMetrics, len(results)),
		Alerts:      make(map[string][]domain.Alert),
		Diagnostics: make(map[string][]string),
	}
	for _, r := range results {
		s.Sections[r.Section] = r.Batch
		if len(r.Alerts) > 0 {
			s.Alerts[r.Section] = r.Alerts
		}
		if len(r.Diagnostics) > 0 {
			s.Diagnostics[r.Section] = r.Diagnostics
		}
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("resumen_semana_%02d.json", week))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func formatUnits(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
