package repository

import (
	"context"

	"github.com/jardineria-aranjuez/reposicion/internal/domain"
)

// ResultsRepository persists and serves the outputs of a weekly run.
type ResultsRepository interface {
	SaveSectionResult(ctx context.Context, year int, res domain.SectionResult) error
	GetBatchMetrics(ctx context.Context, year, week int, section string) (*domain.BatchMetrics, []domain.Alert, error)
	GetCorrections(ctx context.Context, year, week int, section string) ([]domain.CorrectionResult, error)
	GetWeeks(ctx context.Context) ([]domain.WeekRef, error)
	GetSections(ctx context.Context, year, week int) ([]string, error)
}
