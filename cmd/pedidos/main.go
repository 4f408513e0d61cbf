package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/jardineria-aranjuez/reposicion/internal/cache"
	"github.com/jardineria-aranjuez/reposicion/internal/config"
	"github.com/jardineria-aranjuez/reposicion/internal/domain"
	"github.com/jardineria-aranjuez/reposicion/internal/drive"
	"github.com/jardineria-aranjuez/reposicion/internal/engine/metrics"
	"github.com/jardineria-aranjuez/reposicion/internal/loader"
	"github.com/jardineria-aranjuez/reposicion/internal/pipeline"
	"github.com/jardineria-aranjuez/reposicion/internal/report"
	"github.com/jardineria-aranjuez/reposicion/internal/repository/postgres"
	"github.com/jardineria-aranjuez/reposicion/internal/service"
	"github.com/jardineria-aranjuez/reposicion/internal/state"
	"github.com/jardineria-aranjuez/reposicion/internal/storage"
	"github.com/jardineria-aranjuez/reposicion/pkg/logger"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db-url",
		Usage:   "Database connection string",
		EnvVars: []string{"DATABASE_URL"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Msgf("no .env file loaded: %v", err)
	}

	cfg := config.Load()
	logger.Setup(cfg.App.LogLevel)

	nowYear, nowWeek := time.Now().ISOWeek()

	app := &cli.App{
		Name:  "pedidos",
		Usage: "Weekly replenishment engine: segmentation, risk scoring and order correction",
		Commands: []*cli.Command{
			{
				Name:  "ejecutar",
				Usage: "Run the full weekly analysis and write the corrected orders",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "week", Value: nowWeek, Usage: "ISO week to process"},
					&cli.IntFlag{Name: "year", Value: nowYear, Usage: "Year of the week"},
					&cli.IntFlag{Name: "window-days", Value: 28, Usage: "Length of the analysis window in days"},
					&cli.StringSliceFlag{Name: "section", Usage: "Sections to process (default: all)"},
					&cli.IntFlag{Name: "parallelism", Value: 0, Usage: "Max sections processed at once (0 = unbounded)"},
					&cli.BoolFlag{Name: "persist", Usage: "Persist results to the database"},
					&cli.BoolFlag{Name: "upload", Usage: "Upload order files to object storage"},
					newDBURLFlag(),
				},
				Action: runWeek,
			},
			{
				Name:   "descargar",
				Usage:  "Download the newest ERP exports from the shared Drive folder",
				Action: fetchExports,
			},
			{
				Name:   "estado",
				Usage:  "Show the persisted run state",
				Action: showState,
			},
			{
				Name:  "migrar",
				Usage: "Create or update the result tables",
				Flags: []cli.Flag{
					newDBURLFlag(),
				},
				Action: migrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func runWeek(c *cli.Context) error {
	cfg := config.Load()
	week := c.Int("week")
	year := c.Int("year")

	inputs, err := loader.FindInputs(cfg.App.InputDir)
	if err != nil {
		return err
	}
	log.Info().
		Str("purchases", inputs.Purchases).
		Str("sales", inputs.Sales).
		Str("stock", inputs.Stock).
		Msg("input exports located")

	purchases, err := loader.LoadPurchases(inputs.Purchases)
	if err != nil {
		return err
	}
	sales, err := loader.LoadSales(inputs.Sales)
	if err != nil {
		return err
	}
	stock, err := loader.LoadStock(inputs.Stock)
	if err != nil {
		return err
	}

	mgr := state.NewManager(cfg.App.StateFile)
	st, err := mgr.Load()
	if err != nil {
		return err
	}

	windowDays := c.Int("window-days")
	end := isoWeekStart(year, week).AddDate(0, 0, 6)
	window := metrics.Window{Start: end.AddDate(0, 0, -(windowDays - 1)), End: end}

	req := pipeline.Request{
		Week:        week,
		Year:        year,
		Window:      window,
		Purchases:   purchases,
		Sales:       sales,
		Stock:       stock,
		StockLedger: st.StockLedger,
		Sections:    c.StringSlice("section"),
		Parallelism: c.Int("parallelism"),
	}
	log.Info().Msg(pipeline.Describe(req))

	orch := pipeline.NewOrchestrator(cfg.Engine)
	results, err := orch.Run(c.Context, req)
	if err != nil {
		return err
	}

	writer := report.NewWriter(cfg.App.OutputDir)
	if err := writer.WriteOrders(week, year, results); err != nil {
		return err
	}
	if err := writer.WriteMetrics(week, year, results); err != nil {
		return err
	}
	summaryPath, err := writer.WriteSummary(week, year, results)
	if err != nil {
		return err
	}
	log.Info().Str("summary", summaryPath).Msg("run outputs written")

	if c.Bool("persist") {
		if err := persistResults(c.Context, cfg, year, results); err != nil {
			return err
		}
	}
	if c.Bool("upload") {
		if err := uploadOutputs(c.Context, cfg, week, year); err != nil {
			return err
		}
	}

	if err := mgr.Save(mgr.Advance(st, week, year, results)); err != nil {
		return fmt.Errorf("save run state: %w", err)
	}
	return nil
}

func persistResults(ctx context.Context, cfg *config.Config, year int, results []domain.SectionResult) error {
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	batchCache, err := cache.NewBatchCache(cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("cache unavailable, continuing without it")
		batchCache = cache.NewNoopBatchCache()
	}
	svc := service.NewResultsService(postgres.NewResultsRepository(db), batchCache)
	return svc.StoreRun(ctx, year, results)
}

func uploadOutputs(ctx context.Context, cfg *config.Config, week, year int) error {
	client, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return err
	}
	dir := filepath.Join(cfg.App.OutputDir, fmt.Sprintf("%d", year), fmt.Sprintf("semana_%02d", week))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		key := fmt.Sprintf("%d/semana_%02d/%s", year, week, e.Name())
		if err := client.UploadFile(ctx, key, filepath.Join(dir, e.Name())); err != nil {
			return err
		}
		log.Info().Str("key", key).Msg("output uploaded")
	}
	return nil
}

func fetchExports(c *cli.Context) error {
	cfg := config.Load()
	svc, err := drive.NewService(os.Getenv("GOOGLE_DRIVE_CREDENTIALS_JSON"))
	if err != nil {
		return err
	}
	paths, err := svc.FetchWeeklyExports(cfg.Storage.DriveFolderID, cfg.App.InputDir)
	if err != nil {
		return err
	}
	log.Info().Int("files", len(paths)).Msg("exports downloaded")
	return nil
}

func showState(c *cli.Context) error {
	cfg := config.Load()
	st, err := state.NewManager(cfg.App.StateFile).Load()
	if err != nil {
		return err
	}
	fmt.Printf("last run: week %d/%d at %s\n", st.LastWeek, st.LastYear, st.LastRunAt.Format(time.RFC3339))
	fmt.Printf("ledger articles: %d\n", len(st.StockLedger))
	for _, s := range st.SectionsDone {
		fmt.Printf("  section done: %s\n", s)
	}
	return nil
}

func migrate(c *cli.Context) error {
	dbURL := c.String("db-url")
	if dbURL == "" {
		return fmt.Errorf("db-url is required")
	}
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(c.Context, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	log.Info().Msg("schema up to date")
	return nil
}

// isoWeekStart returns the Monday of the given ISO week.
func isoWeekStart(year, week int) time.Time {
	t := time.Date(year, 1, 4, 0, 0, 0, 0, time.UTC)
	for t.Weekday() != time.Monday {
		t = t.AddDate(0, 0, -1)
	}
	return t.AddDate(0, 0, (week-1)*7)
}
