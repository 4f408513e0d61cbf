package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jardineria-aranjuez/reposicion/internal/domain"
)

func sampleResult() domain.SectionResult {
	return domain.SectionResult{
		Section: "interior",
		Week:    34,
		Articles: []domain.ArticleMetrics{
			{
				Key:                domain.ArticleKey{Code: "1101234567", Name: "Ficus lyrata"},
				FamilyName:         "PLANTA INTERIOR",
				RotationTargetDays: 11,
				StockInitial:       10,
				UnitsSold:          8,
				StockFinal:         2,
				Category:           domain.CategoryA,
				ScenarioCode:       "1",
				RecommendedAction:  "Mantener stock actual",
			},
		},
		Corrections: []domain.CorrectionResult{
			{
				Key:                domain.ArticleKey{Code: "1101234567", Name: "Ficus lyrata"},
				TheoreticalOrder:   5,
				MinimumStockTarget: 7,
				RealStockObserved:  2,
				CorrectedOrder:     10,
				ScenarioCode:       "1",
				CorrectionReason:   "Aumentar 5 unidades (recuperar stock mínimo)",
			},
		},
		Batch:  domain.BatchMetrics{TotalArticles: 1, CorrectedArticles: 1, CorrectedPct: 100},
		Alerts: []domain.Alert{{Type: "STOCK_CRITICO", Severity: domain.SeverityHigh, Message: "1 artículos"}},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteOrders(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	require.NoError(t, w.WriteOrders(34, 2026, []domain.SectionResult{sampleResult()}))

	path := filepath.Join(dir, "2026", "semana_34", "pedido_interior_semana_34.csv")
	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"codigo", "descripcion", "talla", "color",
		"pedido_teorico", "stock_minimo", "stock_real",
		"pedido_corregido", "escenario", "motivo",
	}, rows[0])
	assert.Equal(t, "1101234567", rows[1][0])
	assert.Equal(t, "5", rows[1][4])
	assert.Equal(t, "10", rows[1][7])
	assert.Equal(t, "Aumentar 5 unidades (recuperar stock mínimo)", rows[1][9])
}

func TestWriteMetrics(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	require.NoError(t, w.WriteMetrics(34, 2026, []domain.SectionResult{sampleResult()}))

	path := filepath.Join(dir, "2026", "semana_34", "metricas_interior_semana_34.csv")
	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "codigo", rows[0][0])
	assert.Equal(t, "accion_recomendada", rows[0][len(rows[0])-1])
	assert.Len(t, rows[1], len(rows[0]))
	assert.Equal(t, "PLANTA INTERIOR", rows[1][2])
	assert.Equal(t, "11", rows[1][3])
}

func TestWriteSummary(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	path, err := w.WriteSummary(34, 2026, []domain.SectionResult{sampleResult()})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2026", "semana_34", "resumen_semana_34.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var s Summary
	require.NoError(t, json.Unmarshal(data, &s))
	assert.Equal(t, 34, s.Week)
	assert.Equal(t, 2026, s.Year)
	assert.Equal(t, 1, s.Sections["interior"].TotalArticles)
	require.Len(t, s.Alerts["interior"], 1)
	assert.Equal(t, "STOCK_CRITICO", s.Alerts["interior"][0].Type)
	assert.Empty(t, s.Diagnostics)
}

func TestWeekNumberZeroPadding(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	require.NoError(t, w.WriteOrders(3, 2026, []domain.SectionResult{sampleResult()}))
	_, err := os.Stat(filepath.Join(dir, "2026", "semana_03", "pedido_interior_semana_03.csv"))
	assert.NoError(t, err)
}
