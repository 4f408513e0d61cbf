package domain

// RiskLevel grades the shrinkage / dead-stock risk of an article. Values keep
// the warehouse's Spanish labels because they surface verbatim in reports.
type RiskLevel string

const (
	RiskCero    RiskLevel = "Cero"
	RiskBajo    RiskLevel = "Bajo"
	RiskMedio   RiskLevel = "Medio"
	RiskAlto    RiskLevel = "Alto"
	RiskCritico RiskLevel = "Crítico"
)

// StockBand classifies final stock against half the monthly average demand.
type StockBand string

const (
	BandCero    StockBand = "Cero"
	BandBajo    StockBand = "Bajo"
	BandNormal  StockBand = "Normal"
	BandElevado StockBand = "Elevado"
)

// Category is the ABC+D band an article lands in. D means no qualifying
// sales value in the window.
type Category string

const (
	CategoryA Category = "A"
	CategoryB Category = "B"
	CategoryC Category = "C"
	CategoryD Category = "D"
)

// IsTopTier reports whether the category belongs to the A/B half of the
// scenario grid, which receives the more assertive interventions.
func (c Category) IsTopTier() bool {
	return c == CategoryA || c == CategoryB
}

// Valid reports whether c is one of the four known bands.
func (c Category) Valid() bool {
	switch c {
	case CategoryA, CategoryB, CategoryC, CategoryD:
		return true
	}
	return false
}

// Correction diagnostic axes. These are the phase-2 audit labels; they are
// independent from the classification-phase scenario codes and never drive
// the corrected-order formula.
type (
	SalesVsTarget       string
	ReceiptsVsSuggested string
	StockVsMinimum      string
)

const (
	SalesSuperior SalesVsTarget = "SUPERIOR"
	SalesIgual    SalesVsTarget = "IGUAL"
	SalesInferior SalesVsTarget = "INFERIOR"

	ReceiptsExceso  ReceiptsVsSuggested = "EXCESO"
	ReceiptsIgual   ReceiptsVsSuggested = "IGUAL"
	ReceiptsDefecto ReceiptsVsSuggested = "DEFECTO"

	StockExcedente StockVsMinimum = "EXCEDENTE"
	StockOptimo    StockVsMinimum = "OPTIMO"
	StockDeficit   StockVsMinimum = "DEFICIT"
)
