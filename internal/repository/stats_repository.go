package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"newsboard/internal/models"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats

	err := r.db.GetContext(ctx, &stats, `
			SELECT
				(SELECT COUNT(*) FROM posts) AS posts,
				(SELECT COUNT(*) FROM comments) AS comments,
				(SELECT COALESCE(SUM(likes), 0) FROM posts) +
				(SELECT COALESCE(SUM(likes), 0) FROM comments) AS likes
		`)

	if err != nil {
		return nil, fmt.Errorf("failed to collect store stats: %w", err)
	}

	return &stats, nil
}
