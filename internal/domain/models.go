package domain

import "time"

// ArticleKey identifies an article. Two records sharing a code but differing
// in size or color are distinct articles. Codes shorter than 10 digits are
// filtered out upstream by the section resolver and never reach the engines.
type ArticleKey struct {
	Code  string `json:"code" db:"code"`
	Name  string `json:"name" db:"name"`
	Size  string `json:"size" db:"size"`
	Color string `json:"color" db:"color"`
}

// PurchaseRecord is one purchase line already filtered to a section and
// analysis window.
type PurchaseRecord struct {
	Key   ArticleKey
	Date  time.Time
	Units float64
}

// SaleRecord is one sale line. Cost may be zero when the upstream export
// lacks it; the loader derives it from price and VAT in that case.
type SaleRecord struct {
	Key    ArticleKey
	Date   time.Time
	Units  float64
	Amount float64
	Profit float64
	Cost   float64
}

// StockRecord is one line of the current stock snapshot.
type StockRecord struct {
	Key      ArticleKey
	Units    float64
	UnitCost float64
}

// ArticleMetrics holds everything the engines derive for one article over one
// analysis window. Computed once per run and immutable afterwards.
type ArticleMetrics struct {
	Key ArticleKey `json:"key"`

	FamilyKey          string  `json:"family_key" db:"family_key"`
	FamilyName         string  `json:"family_name" db:"family_name"`
	RotationTargetDays int     `json:"rotation_target_days" db:"rotation_target_days"`

	StockInitial     float64 `json:"stock_initial" db:"stock_initial"`
	PurchasesPeriod  float64 `json:"purchases_period" db:"purchases_period"`
	UnitsSold        float64 `json:"units_sold" db:"units_sold"`
	SalesAmount      float64 `json:"sales_amount" db:"sales_amount"`
	ProfitAmount     float64 `json:"profit_amount" db:"profit_amount"`
	CostOfGoodsSold  float64 `json:"cost_of_goods_sold" db:"cost_of_goods_sold"`
	StockFinal       float64 `json:"stock_final" db:"stock_final"`
	UnitCost         float64 `json:"unit_cost" db:"unit_cost"`

	SaleRatePct         float64   `json:"sale_rate_pct" db:"sale_rate_pct"`
	StockAgeDays        int       `json:"stock_age_days" db:"stock_age_days"`
	StockOrigin         string    `json:"stock_origin" db:"stock_origin"`
	PctRotationConsumed float64   `json:"pct_rotation_consumed" db:"pct_rotation_consumed"`
	DiscountPct         int       `json:"discount_pct" db:"discount_pct"`
	RiskLevel           RiskLevel `json:"risk_level" db:"risk_level"`
	StockLevelBand      StockBand `json:"stock_level_band" db:"stock_level_band"`
	DaysSinceLastSale   int       `json:"days_since_last_sale" db:"days_since_last_sale"`
	ExceededRotation    float64   `json:"exceeded_rotation" db:"exceeded_rotation"`

	StockMin     float64 `json:"stock_min" db:"stock_min"`
	StockMax     float64 `json:"stock_max" db:"stock_max"`
	CoverageDays float64 `json:"coverage_days" db:"coverage_days"`

	Category           Category `json:"category" db:"category"`
	CumulativeSharePct float64  `json:"cumulative_share_pct" db:"cumulative_share_pct"`
	ScenarioCode       string   `json:"scenario_code" db:"scenario_code"`
	RecommendedAction  string   `json:"recommended_action" db:"recommended_action"`
}

// CorrectionInput carries one article into the phase-2 correction. Optional
// fields default to zero; SuggestedReceipts defaults to TheoreticalOrder.
type CorrectionInput struct {
	Key ArticleKey

	TheoreticalOrder   float64
	MinimumStockTarget float64
	RealStockObserved  float64

	Category          Category
	RealSales         float64
	SalesTarget       float64
	RealReceipts      float64
	SuggestedReceipts float64
}

// CorrectionResult is the reconciled order for one article.
type CorrectionResult struct {
	Key ArticleKey `json:"key"`

	TheoreticalOrder   float64 `json:"theoretical_order" db:"theoretical_order"`
	MinimumStockTarget float64 `json:"minimum_stock_target" db:"minimum_stock_target"`
	RealStockObserved  float64 `json:"real_stock_observed" db:"real_stock_observed"`
	StockGap           float64 `json:"stock_gap" db:"stock_gap"`
	CorrectedOrder     float64 `json:"corrected_order" db:"corrected_order"`
	ScenarioCode       string  `json:"scenario_code" db:"scenario_code"`
	CorrectionReason   string  `json:"correction_reason" db:"correction_reason"`
}

// BatchMetrics summarizes a correction batch for reporting.
type BatchMetrics struct {
	TotalArticles     int            `json:"total_articles"`
	CorrectedArticles int            `json:"corrected_articles"`
	CorrectedPct      float64        `json:"corrected_pct"`
	UnitsTheoretical  float64        `json:"units_theoretical"`
	UnitsCorrected    float64        `json:"units_corrected"`
	UnitsDelta        float64        `json:"units_delta"`
	ChangePct         float64        `json:"change_pct"`
	ForecastPrecision *float64       `json:"forecast_precision,omitempty"`
	ScenarioHistogram map[string]int `json:"scenario_histogram"`
}

// AlertSeverity tags advisory alerts emitted by the correction engine.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "ALTO"
	SeverityMedium AlertSeverity = "MEDIO"
	SeverityLow    AlertSeverity = "BAJO"
)

// Alert flags a condition that deserves a human look. Advisory only, never
// blocks the batch.
type Alert struct {
	Type     string        `json:"type"`
	Severity AlertSeverity `json:"severity"`
	Message  string        `json:"message"`
	Articles []string      `json:"articles"`
}

// WeekRef points at one stored run.
type WeekRef struct {
	Year int `json:"year" db:"year"`
	Week int `json:"week" db:"week"`
}

// SectionResult bundles everything one section's run produced.
type SectionResult struct {
	Section     string             `json:"section"`
	Week        int                `json:"week"`
	Articles    []ArticleMetrics   `json:"articles"`
	Corrections []CorrectionResult `json:"corrections"`
	Batch       BatchMetrics       `json:"batch"`
	Alerts      []Alert            `json:"alerts"`
	Diagnostics []string           `json:"diagnostics,omitempty"`
}
