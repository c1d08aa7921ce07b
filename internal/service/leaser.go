package service

import (
	"context"
	"fmt"

	"leaseflow-backend/internal/domain"
	"leaseflow-backend/internal/repository"
)

type leaserService struct {
	leaserRepo repository.LeaserRepository
}

func NewLeaserService(leaserRepo repository.LeaserRepository) LeaserService {
	return &leaserService{leaserRepo: leaserRepo}
}

func (s *leaserService) CreateLeaser(ctx context.Context, leaser *domain.Leaser) error {
	if leaser.Name == "" {
		return fmt.Errorf("%w: leaser name is required", domain.ErrInvalidInput)
	}
	if err := validateRanges(leaser.Ranges); err != nil {
		return err
	}
	return s.leaserRepo.Create(ctx, leaser)
}

func (s *leaserService) GetLeaser(ctx context.Context, id string) (*domain.Leaser, error) {
	return s.leaserRepo.GetByID(ctx, id)
}

func (s *leaserService) ListLeasers(ctx context.Context) ([]domain.Leaser, error) {
	return s.leaserRepo.List(ctx)
}

// SetDefault promotes one leaser; the repository clears the previous default
// in the same transaction, so exactly one default exists at any time.
func (s *leaserService) SetDefault(ctx context.Context, id string) error {
	return s.leaserRepo.SetDefault(ctx, id)
}

func (s *leaserService) ReplaceRanges(ctx context.Context, leaserID string, ranges []domain.Range) error {
	if err := validateRanges(ranges); err != nil {
		return err
	}
	return s.leaserRepo.ReplaceRanges(ctx, leaserID, ranges)
}

func validateRanges(ranges []domain.Range) error {
	for _, r := range ranges {
		if r.Min > r.Max || r.Min < 0 || r.Coefficient <= 0 {
			return fmt.Errorf("%w: invalid range [%d-%d] coefficient %.2f",
				domain.ErrInvalidInput, r.Min, r.Max, r.Coefficient)
		}
	}
	return nil
}
