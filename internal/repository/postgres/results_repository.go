package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jardineria-aranjuez/reposicion/internal/domain"
)

type resultsRepository struct {
	db *DB
}

func NewResultsRepository(db *DB) *resultsRepository {
	return &resultsRepository{db: db}
}

// SaveSectionResult replaces the stored rows for (year, week, section) with
// the given run. Reruns of the same week are idempotent.
func (r *resultsRepository) SaveSectionResult(ctx context.Context, year int, res domain.SectionResult) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"article_metrics", "order_corrections", "batch_metrics"} {
			query := fmt.Sprintf(`DELETE FROM %s WHERE year = $1 AND week = $2 AND section = $3`, table)
			if _, err := tx.ExecContext(ctx, query, year, res.Week, res.Section); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		if err := r.insertArticles(ctx, tx, year, res); err != nil {
			return err
		}
		if err := r.insertCorrections(ctx, tx, year, res); err != nil {
			return err
		}
		return r.insertBatch(ctx, tx, year, res)
	})
}

func (r *resultsRepository) insertArticles(ctx context.Context, tx *sql.Tx, year int, res domain.SectionResult) error {
	query := `
		INSERT INTO article_metrics (
			year, week, section, code, name, size, color,
			family_key, family_name, rotation_target_days,
			stock_initial, purchases_period, units_sold, sales_amount,
			cost_of_goods_sold, stock_final, unit_cost,
			sale_rate_pct, stock_age_days, stock_origin, pct_rotation_consumed,
			discount_pct, risk_level, stock_level_band, days_since_last_sale,
			stock_min, stock_max, coverage_days,
			category, cumulative_share_pct, scenario_code, recommended_action,
			created_at
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,
			$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33
		)
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare article insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, a := range res.Articles {
		_, err := stmt.ExecContext(ctx,
			year, res.Week, res.Section, a.Key.Code, a.Key.Name, a.Key.Size, a.Key.Color,
			a.FamilyKey, a.FamilyName, a.RotationTargetDays,
			a.StockInitial, a.PurchasesPeriod, a.UnitsSold, a.SalesAmount,
			a.CostOfGoodsSold, a.StockFinal, a.UnitCost,
			a.SaleRatePct, a.StockAgeDays, a.StockOrigin, a.PctRotationConsumed,
			a.DiscountPct, a.RiskLevel, a.StockLevelBand, a.DaysSinceLastSale,
			a.StockMin, a.StockMax, a.CoverageDays,
			a.Category, a.CumulativeSharePct, a.ScenarioCode, a.RecommendedAction,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert article metrics: %w", err)
		}
	}
	return nil
}

func (r *resultsRepository) insertCorrections(ctx context.Context, tx *sql.Tx, year int, res domain.SectionResult) error {
	query := `
		INSERT INTO order_corrections (
			year, week, section, code, name, size, color,
			theoretical_order, minimum_stock_target, real_stock_observed,
			stock_gap, corrected_order, scenario_code, correction_reason,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare correction insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, c := range res.Corrections {
		_, err := stmt.ExecContext(ctx,
			year, res.Week, res.Section, c.Key.Code, c.Key.Name, c.Key.Size, c.Key.Color,
			c.TheoreticalOrder, c.MinimumStockTarget, c.RealStockObserved,
			c.StockGap, c.CorrectedOrder, c.ScenarioCode, c.CorrectionReason,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert correction: %w", err)
		}
	}
	return nil
}

func (r *resultsRepository) insertBatch(ctx context.Context, tx *sql.Tx, year int, res domain.SectionResult) error {
	histogram, err := json.Marshal(res.Batch.ScenarioHistogram)
	if err != nil {
		return fmt.Errorf("failed to encode scenario histogram: %w", err)
	}
	alerts, err := json.Marshal(res.Alerts)
	if err != nil {
		return fmt.Errorf("failed to encode alerts: %w", err)
	}

	query := `
		INSERT INTO batch_metrics (
			year, week, section, total_articles, corrected_articles,
			corrected_pct, units_theoretical, units_corrected, units_delta,
			change_pct, forecast_precision, scenario_histogram, alerts, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`
	_, err = tx.ExecContext(ctx, query,
		year, res.Week, res.Section,
		res.Batch.TotalArticles, res.Batch.CorrectedArticles, res.Batch.CorrectedPct,
		res.Batch.UnitsTheoretical, res.Batch.UnitsCorrected, res.Batch.UnitsDelta,
		res.Batch.ChangePct, res.Batch.ForecastPrecision, histogram, alerts, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert batch metrics: %w", err)
	}
	return nil
}

type batchRow struct {
	Section           string          `db:"section"`
	Week              int             `db:"week"`
	Year              int             `db:"year"`
	TotalArticles     int             `db:"total_articles"`
	CorrectedArticles int             `db:"corrected_articles"`
	CorrectedPct      float64         `db:"corrected_pct"`
	UnitsTheoretical  float64         `db:"units_theoretical"`
	UnitsCorrected    float64         `db:"units_corrected"`
	UnitsDelta        float64         `db:"units_delta"`
	ChangePct         float64         `db:"change_pct"`
	ForecastPrecision *float64        `db:"forecast_precision"`
	ScenarioHistogram json.RawMessage `db:"scenario_histogram"`
	Alerts            json.RawMessage `db:"alerts"`
}

// GetBatchMetrics returns the stored batch summary for one section and week.
func (r *resultsRepository) GetBatchMetrics(ctx context.Context, year, week int, section string) (*domain.BatchMetrics, []domain.Alert, error) {
	query := `
		SELECT section, week, year, total_articles, corrected_articles,
		       corrected_pct, units_theoretical, units_corrected, units_delta,
		       change_pct, forecast_precision, scenario_histogram, alerts
		FROM batch_metrics
		WHERE year = $1 AND week = $2 AND section = $3
	`
	var row batchRow
	if err := sqlx.GetContext(ctx, r.db, &row, query, year, week, section); err != nil {
		return nil, nil, fmt.Errorf("failed to get batch metrics: %w", err)
	}

	m := domain.BatchMetrics{
		TotalArticles:     row.TotalArticles,
		CorrectedArticles: row.CorrectedArticles,
		CorrectedPct:      row.CorrectedPct,
		UnitsTheoretical:  row.UnitsTheoretical,
		UnitsCorrected:    row.UnitsCorrected,
		UnitsDelta:        row.UnitsDelta,
		ChangePct:         row.ChangePct,
		ForecastPrecision: row.ForecastPrecision,
	}
	if len(row.ScenarioHistogram) > 0 {
		if err := json.Unmarshal(row.ScenarioHistogram, &m.ScenarioHistogram); err != nil {
			return nil, nil, fmt.Errorf("failed to decode scenario histogram: %w", err)
		}
	}
	var alerts []domain.Alert
	if len(row.Alerts) > 0 {
		if err := json.Unmarshal(row.Alerts, &alerts); err != nil {
			return nil, nil, fmt.Errorf("failed to decode alerts: %w", err)
		}
	}
	return &m, alerts, nil
}

type correctionRow struct {
	Code               string  `db:"code"`
	Name               string  `db:"name"`
	Size               string  `db:"size"`
	Color              string  `db:"color"`
	TheoreticalOrder   float64 `db:"theoretical_order"`
	MinimumStockTarget float64 `db:"minimum_stock_target"`
	RealStockObserved  float64 `db:"real_stock_observed"`
	StockGap           float64 `db:"stock_gap"`
	CorrectedOrder     float64 `db:"corrected_order"`
	ScenarioCode       string  `db:"scenario_code"`
	CorrectionReason   string  `db:"correction_reason"`
}

// GetCorrections returns the corrected order lines for one section and week,
// largest corrections first.
func (r *resultsRepository) GetCorrections(ctx context.Context, year, week int, section string) ([]domain.CorrectionResult, error) {
	query := `
		SELECT code, name, size, color,
		       theoretical_order, minimum_stock_target, real_stock_observed,
		       stock_gap, corrected_order, scenario_code, correction_reason
		FROM order_corrections
		WHERE year = $1 AND week = $2 AND section = $3
		ORDER BY ABS(corrected_order - theoretical_order) DESC, code
	`
	var rows []correctionRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, year, week, section); err != nil {
		return nil, fmt.Errorf("failed to get corrections: %w", err)
	}

	out := make([]domain.CorrectionResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.CorrectionResult{
			Key:                domain.ArticleKey{Code: row.Code, Name: row.Name, Size: row.Size, Color: row.Color},
			TheoreticalOrder:   row.TheoreticalOrder,
			MinimumStockTarget: row.MinimumStockTarget,
			RealStockObserved:  row.RealStockObserved,
			StockGap:           row.StockGap,
			CorrectedOrder:     row.CorrectedOrder,
			ScenarioCode:       row.ScenarioCode,
			CorrectionReason:   row.CorrectionReason,
		})
	}
	return out, nil
}

// GetWeeks lists the (year, week) pairs with stored results, newest first.
func (r *resultsRepository) GetWeeks(ctx context.Context) ([]domain.WeekRef, error) {
	query := `
		SELECT DISTINCT year, week
		FROM batch_metrics
		ORDER BY year DESC, week DESC
	`
	var weeks []domain.WeekRef
	if err := sqlx.SelectContext(ctx, r.db, &weeks, query); err != nil {
		return nil, fmt.Errorf("failed to get weeks: %w", err)
	}
	return weeks, nil
}

// GetSections lists the sections with results for a given week.
func (r *resultsRepository) GetSections(ctx context.Context, year, week int) ([]string, error) {
	query := `
		SELECT section FROM batch_metrics
		WHERE year = $1 AND week = $2
		ORDER BY section
	`
	var sections []string
	if err := sqlx.SelectContext(ctx, r.db, &sections, query, year, week); err != nil {
		return nil, fmt.Errorf("failed to get sections: %w", err)
	}
	return sections, nil
}
