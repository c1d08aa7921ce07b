package service

import (
	"context"

	"leaseflow-backend/internal/domain"
	"leaseflow-backend/internal/finance"
	"leaseflow-backend/internal/repository"
)

type commissionService struct {
	levelRepo repository.CommissionLevelRepository
}

func NewCommissionService(levelRepo repository.CommissionLevelRepository) CommissionService {
	return &commissionService{levelRepo: levelRepo}
}

// Preview resolves a commission for display straight from persisted data.
// An empty levelID applies the default policy.
func (s *commissionService) Preview(ctx context.Context, financedAmount int64, levelID string) (*finance.Commission, error) {
	var level *domain.CommissionLevel
	if levelID != "" {
		var err error
		level, err = s.levelRepo.GetByID(ctx, levelID)
		if err != nil {
			return nil, err
		}
	}
	commission, err := finance.ResolveCommission(financedAmount, level)
	if err != nil {
		return nil, err
	}
	return &commission, nil
}

func (s *commissionService) CreateLevel(ctx context.Context, level *domain.CommissionLevel) error {
	if err := finance.ValidateRates(level.Rates); err != nil {
		return err
	}
	return s.levelRepo.Create(ctx, level)
}

func (s *commissionService) GetLevel(ctx context.Context, id string) (*domain.CommissionLevel, error) {
	return s.levelRepo.GetByID(ctx, id)
}

func (s *commissionService) ListLevels(ctx context.Context) ([]domain.CommissionLevel, error) {
	return s.levelRepo.List(ctx)
}

func (s *commissionService) ReplaceRates(ctx context.Context, levelID string, rates []domain.CommissionRate) error {
	if err := finance.ValidateRates(rates); err != nil {
		return err
	}
	return s.levelRepo.ReplaceRates(ctx, levelID, rates)
}
