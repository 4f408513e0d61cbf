package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jardineria-aranjuez/reposicion/internal/cache"
	"github.com/jardineria-aranjuez/reposicion/internal/domain"
	"github.com/jardineria-aranjuez/reposicion/internal/repository"
)

// ResultsService serves stored run outputs to the API, with the batch
// summaries cached per (year, week, section).
type ResultsService struct {
	repo  repository.ResultsRepository
	cache cache.BatchCache
}

func NewResultsService(repo repository.ResultsRepository, cacheImpl cache.BatchCache) *ResultsService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopBatchCache()
	}
	return &ResultsService{repo: repo, cache: cacheImpl}
}

func (s *ResultsService) GetBatchMetrics(ctx context.Context, year, week int, section string) (*domain.BatchMetrics, []domain.Alert, error) {
	if m, alerts, ok, err := s.cache.Get(ctx, year, week, section); err == nil && ok {
		return m, alerts, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("results: cache get failed")
	}

	m, alerts, err := s.repo.GetBatchMetrics(ctx, year, week, section)
	if err != nil {
		return nil, nil, err
	}

	if err := s.cache.Set(ctx, year, week, section, *m, alerts); err != nil {
		log.Warn().Err(err).Msg("results: cache set failed")
	}

	return m, alerts, nil
}

func (s *ResultsService) GetCorrections(ctx context.Context, year, week int, section string) ([]domain.CorrectionResult, error) {
	return s.repo.GetCorrections(ctx, year, week, section)
}

func (s *ResultsService) GetWeeks(ctx context.Context) ([]domain.WeekRef, error) {
	return s.repo.GetWeeks(ctx)
}

func (s *ResultsService) GetSections(ctx context.Context, year, week int) ([]string, error) {
	return s.repo.GetSections(ctx, year, week)
}

// StoreRun persists every section of a finished run and refreshes the cache.
func (s *ResultsService) StoreRun(ctx context.Context, year int, results []domain.SectionResult) error {
	for _, res := range results {
		if err := s.repo.SaveSectionResult(ctx, year, res); err != nil {
			return err
		}
		if err := s.cache.Set(ctx, year, res.Week, res.Section, res.Batch, res.Alerts); err != nil {
			log.Warn().Err(err).Str("section", res.Section).Msg("results: cache refresh failed")
		}
	}
	return nil
}
