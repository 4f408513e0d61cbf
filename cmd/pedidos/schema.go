package main

// schema holds the DDL the migrar command applies. Statements are idempotent
// so reruns are safe.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS article_metrics (
		id BIGSERIAL PRIMARY KEY,
		year INT NOT NULL,
		week INT NOT NULL,
		section TEXT NOT NULL,
		code TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		size TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '',
		family_key TEXT NOT NULL DEFAULT '',
		family_name TEXT NOT NULL DEFAULT '',
		rotation_target_days INT NOT NULL DEFAULT 0,
		stock_initial DOUBLE PRECISION NOT NULL DEFAULT 0,
		purchases_period DOUBLE PRECISION NOT NULL DEFAULT 0,
		units_sold DOUBLE PRECISION NOT NULL DEFAULT 0,
		sales_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		cost_of_goods_sold DOUBLE PRECISION NOT NULL DEFAULT 0,
		stock_final DOUBLE PRECISION NOT NULL DEFAULT 0,
		unit_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
		sale_rate_pct DOUBLE PRECISION NOT NULL DEFAULT 0,
		stock_age_days INT NOT NULL DEFAULT 0,
		stock_origin TEXT NOT NULL DEFAULT '',
		pct_rotation_consumed DOUBLE PRECISION NOT NULL DEFAULT 0,
		discount_pct INT NOT NULL DEFAULT 0,
		risk_level TEXT NOT NULL DEFAULT '',
		stock_level_band TEXT NOT NULL DEFAULT '',
		days_since_last_sale INT NOT NULL DEFAULT 0,
		stock_min DOUBLE PRECISION NOT NULL DEFAULT 0,
		stock_max DOUBLE PRECISION NOT NULL DEFAULT 0,
		coverage_days DOUBLE PRECISION NOT NULL DEFAULT 0,
		category TEXT NOT NULL DEFAULT '',
		cumulative_share_pct DOUBLE PRECISION NOT NULL DEFAULT 0,
		scenario_code TEXT NOT NULL DEFAULT '',
		recommended_action TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_article_metrics_run
		ON article_metrics (year, week, section)`,

	`CREATE TABLE IF NOT EXISTS order_corrections (
		id BIGSERIAL PRIMARY KEY,
		year INT NOT NULL,
		week INT NOT NULL,
		section TEXT NOT NULL,
		code TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		size TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '',
		theoretical_order DOUBLE PRECISION NOT NULL DEFAULT 0,
		minimum_stock_target DOUBLE PRECISION NOT NULL DEFAULT 0,
		real_stock_observed DOUBLE PRECISION NOT NULL DEFAULT 0,
		stock_gap DOUBLE PRECISION NOT NULL DEFAULT 0,
		corrected_order DOUBLE PRECISION NOT NULL DEFAULT 0,
		scenario_code TEXT NOT NULL DEFAULT '',
		correction_reason TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_corrections_run
		ON order_corrections (year, week, section)`,

	`CREATE TABLE IF NOT EXISTS batch_metrics (
		id BIGSERIAL PRIMARY KEY,
		year INT NOT NULL,
		week INT NOT NULL,
		section TEXT NOT NULL,
		total_articles INT NOT NULL DEFAULT 0,
		corrected_articles INT NOT NULL DEFAULT 0,
		corrected_pct DOUBLE PRECISION NOT NULL DEFAULT 0,
		units_theoretical DOUBLE PRECISION NOT NULL DEFAULT 0,
		units_corrected DOUBLE PRECISION NOT NULL DEFAULT 0,
		units_delta DOUBLE PRECISION NOT NULL DEFAULT 0,
		change_pct DOUBLE PRECISION NOT NULL DEFAULT 0,
		forecast_precision DOUBLE PRECISION,
		scenario_histogram JSONB NOT NULL DEFAULT '{}',
		alerts JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (year, week, section)
	)`,
}
