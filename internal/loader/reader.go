// Package loader reads the weekly warehouse exports (purchases, sales and
// stock snapshot) into domain records. Exports come from the ERP with
// inconsistent headers and locale-formatted numbers, so everything is
// normalized at the edge.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jardineria-aranjuez/reposicion/internal/catalog"
	"github.com/jardineria-aranjuez/reposicion/internal/domain"
)

var columnNameSanitizer = strings.NewReplacer(" ", "", "_", "", ".", "", "-", "", "/", "")

func normalizeColumnName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return columnNameSanitizer.Replace(name)
}

// table wraps a parsed CSV with header-based column lookup tolerant to the
// naming drift between export versions.
type table struct {
	header  []string
	records [][]string
}

func readTable(path string) (*table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		records = append(records, record)
	}
	return &table{header: header, records: records}, nil
}

func (t *table) colIndex(names ...string) int {
	targets := make(map[string]struct{}, len(names))
	for _, name := range names {
		targets[normalizeColumnName(name)] = struct{}{}
	}
	for i, h := range t.header {
		if _, ok := targets[normalizeColumnName(h)]; ok {
			return i
		}
	}
	return -1
}

func get(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseFloat accepts both "1.234,56" and "1,234.56" shapes the ERP emits.
func parseFloat(record []string, idx int) float64 {
	v := get(record, idx)
	if v == "" {
		return 0
	}
	if strings.Contains(v, ",") && strings.Contains(v, ".") {
		if strings.LastIndex(v, ",") > strings.LastIndex(v, ".") {
			v = strings.ReplaceAll(v, ".", "")
			v = strings.ReplaceAll(v, ",", ".")
		} else {
			v = strings.ReplaceAll(v, ",", "")
		}
	} else if strings.Contains(v, ",") {
		v = strings.ReplaceAll(v, ",", ".")
	}
	f, _ := strconv.ParseFloat(v, 64)
	return f
}

var dateLayouts = []string{"02/01/2006", "2006-01-02", "02-01-2006", "02/01/06"}

func parseDate(record []string, idx int) time.Time {
	v := get(record, idx)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, v); err == nil {
			return d
		}
	}
	return time.Time{}
}

func articleKey(t *table, record []string, idxCode, idxName, idxSize, idxColor int) domain.ArticleKey {
	return domain.ArticleKey{
		Code:  get(record, idxCode),
		Name:  get(record, idxName),
		Size:  get(record, idxSize),
		Color: get(record, idxColor),
	}
}

// LoadPurchases reads a purchases export. Rows without a parseable date are
// dropped with a warning; the stock-age walk needs ordered dates.
func LoadPurchases(path string) ([]domain.PurchaseRecord, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	idxCode := t.colIndex("codigo", "código", "codigo articulo", "code")
	idxName := t.colIndex("descripcion", "descripción", "articulo", "artículo", "nombre")
	idxSize := t.colIndex("talla", "size")
	idxColor := t.colIndex("color")
	idxDate := t.colIndex("fecha", "fecha compra", "fecha albaran", "date")
	idxUnits := t.colIndex("unidades", "cantidad", "uds", "units")

	if idxCode < 0 || idxUnits < 0 {
		return nil, fmt.Errorf("purchases file %s: missing code or units column", path)
	}

	out := make([]domain.PurchaseRecord, 0, len(t.records))
	dropped := 0
	for _, record := range t.records {
		date := parseDate(record, idxDate)
		if date.IsZero() {
			dropped++
			continue
		}
		out = append(out, domain.PurchaseRecord{
			Key:   articleKey(t, record, idxCode, idxName, idxSize, idxColor),
			Date:  date,
			Units: parseFloat(record, idxUnits),
		})
	}
	if dropped > 0 {
		log.Warn().Str("file", path).Int("rows", dropped).Msg("purchase rows dropped for unparseable dates")
	}
	return out, nil
}

// LoadSales reads a sales export. When the cost column is missing or zero the
// unit cost is derived from price and the family VAT rate.
func LoadSales(path string) ([]domain.SaleRecord, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	idxCode := t.colIndex("codigo", "código", "codigo articulo", "code")
	idxName := t.colIndex("descripcion", "descripción", "articulo", "artículo", "nombre")
	idxSize := t.colIndex("talla", "size")
	idxColor := t.colIndex("color")
	idxDate := t.colIndex("fecha", "fecha venta", "date")
	idxUnits := t.colIndex("unidades", "cantidad", "uds", "units")
	idxAmount := t.colIndex("importe", "importe venta", "total", "amount")
	idxProfit := t.colIndex("beneficio", "margen", "profit")
	idxCost := t.colIndex("coste", "costo", "cost")
	idxPrice := t.colIndex("precio", "pvp", "price")

	if idxCode < 0 || idxUnits < 0 {
		return nil, fmt.Errorf("sales file %s: missing code or units column", path)
	}

	out := make([]domain.SaleRecord, 0, len(t.records))
	derived := 0
	for _, record := range t.records {
		key := articleKey(t, record, idxCode, idxName, idxSize, idxColor)
		rec := domain.SaleRecord{
			Key:    key,
			Date:   parseDate(record, idxDate),
			Units:  parseFloat(record, idxUnits),
			Amount: parseFloat(record, idxAmount),
			Profit: parseFloat(record, idxProfit),
			Cost:   parseFloat(record, idxCost),
		}
		if rec.Cost == 0 {
			price := parseFloat(record, idxPrice)
			if price == 0 && rec.Units > 0 {
				price = rec.Amount / rec.Units
			}
			if price > 0 {
				rec.Cost = catalog.DeriveCost(price, catalog.VATOf(key.Code))
				derived++
			}
		}
		out = append(out, rec)
	}
	if derived > 0 {
		log.Debug().Str("file", path).Int("rows", derived).Msg("sale costs derived from price and VAT")
	}
	return out, nil
}

// LoadStock reads the stock snapshot export.
func LoadStock(path string) ([]domain.StockRecord, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	idxCode := t.colIndex("codigo", "código", "codigo articulo", "code")
	idxName := t.colIndex("descripcion", "descripción", "articulo", "artículo", "nombre")
	idxSize := t.colIndex("talla", "size")
	idxColor := t.colIndex("color")
	idxUnits := t.colIndex("stock", "unidades", "existencias", "units")
	idxCost := t.colIndex("coste", "costo", "precio coste", "cost")

	if idxCode < 0 || idxUnits < 0 {
		return nil, fmt.Errorf("stock file %s: missing code or units column", path)
	}

	out := make([]domain.StockRecord, 0, len(t.records))
	for _, record := range t.records {
		out = append(out, domain.StockRecord{
			Key:      articleKey(t, record, idxCode, idxName, idxSize, idxColor),
			Units:    parseFloat(record, idxUnits),
			UnitCost: parseFloat(record, idxCost),
		})
	}
	return out, nil
}

// FilterSection keeps only the records whose article code resolves to the
// given section. Codes shorter than ten digits resolve to no section and are
// excluded here.
func FilterSection[T any](records []T, section string, keyOf func(T) domain.ArticleKey) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if catalog.SectionOf(keyOf(r).Code) == section {
			out = append(out, r)
		}
	}
	return out
}
