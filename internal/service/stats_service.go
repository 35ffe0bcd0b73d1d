package service

import (
	"context"

	"newsboard/internal/models"
	"newsboard/internal/repository"
)

type StatsService interface {
	GetStats(ctx context.Context) (*models.Stats, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) GetStats(ctx context.Context) (*models.Stats, error) {
	stats, err := s.statsRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
