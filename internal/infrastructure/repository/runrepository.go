package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"razones/internal/domain/run"
)

type RunRepositoryImpl struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) run.Repository {
	return &RunRepositoryImpl{db: db}
}

func (r *RunRepositoryImpl) Create(ctx context.Context, rn *run.Run) error {
	if err := r.db.WithContext(ctx).Create(rn).Error; err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

func (r *RunRepositoryImpl) List(ctx context.Context, limit int) ([]run.Run, error) {
	if limit <= 0 {
		limit = 50
	}

	var runs []run.Run
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}
