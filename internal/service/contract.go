package service

import (
	"context"
	"fmt"
	"time"

	"leaseflow-backend/internal/domain"
	"leaseflow-backend/internal/finance"
	"leaseflow-backend/internal/repository"
	"leaseflow-backend/internal/workflow"
)

type contractService struct {
	contractRepo repository.ContractRepository
	logRepo      repository.WorkflowLogRepository
	now          func() time.Time
}

func NewContractService(contractRepo repository.ContractRepository, logRepo repository.WorkflowLogRepository) ContractService {
	return &contractService{
		contractRepo: contractRepo,
		logRepo:      logRepo,
		now:          time.Now,
	}
}

func (s *contractService) GetContract(ctx context.Context, id string) (*domain.Contract, error) {
	return s.contractRepo.GetByID(ctx, id)
}

func (s *contractService) History(ctx context.Context, contractID string) ([]domain.WorkflowLogEntry, error) {
	return s.logRepo.ListByEntity(ctx, contractID)
}

// Terminate completes a contract. Termination is always an explicit actor
// action; nothing here runs on a timer.
func (s *contractService) Terminate(ctx context.Context, contractID string, reason string, actor domain.Actor) (*domain.Contract, error) {
	return s.transition(ctx, contractID, domain.ContractStatusCompleted, reason, actor, nil)
}

// Extend prolongs a running contract. A completed contract only reopens
// through Reactivate, which checks the end date has actually lapsed.
func (s *contractService) Extend(ctx context.Context, contractID string, actor domain.Actor) (*domain.Contract, error) {
	guard := func(c *domain.Contract) error {
		if c.Status == domain.ContractStatusCompleted {
			return fmt.Errorf("%w: a completed contract reopens through reactivation", domain.ErrInvalidTransition)
		}
		return nil
	}
	return s.transition(ctx, contractID, domain.ContractStatusExtended, "", actor, guard)
}

// Reactivate reopens a completed contract as extended rather than leaving it
// incorrectly terminal, allowed only once the contractual end date lapsed.
func (s *contractService) Reactivate(ctx context.Context, contractID string, actor domain.Actor) (*domain.Contract, error) {
	guard := func(c *domain.Contract) error {
		end := c.EndDate()
		if end == nil || !end.Before(s.now()) {
			return fmt.Errorf("%w: contract end date has not lapsed", domain.ErrInvalidTransition)
		}
		return nil
	}
	return s.transition(ctx, contractID, domain.ContractStatusExtended, "reactivated after lapsed end date", actor, guard)
}

func (s *contractService) transition(ctx context.Context, contractID string, requested domain.ContractStatus, reason string, actor domain.Actor, guard func(*domain.Contract) error) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if err := workflow.ValidateContractTransition(contract.Status, requested); err != nil {
		return nil, err
	}
	if guard != nil {
		if err := guard(contract); err != nil {
			return nil, err
		}
	}

	previous := contract.Status
	expectedVersion := contract.Version
	contract.Status = requested
	if requested == domain.ContractStatusCompleted {
		contract.TerminationReason = reason
	}
	if err := s.contractRepo.UpdateStatus(ctx, contract, expectedVersion); err != nil {
		contract.Status = previous
		return nil, err
	}

	entry := &domain.WorkflowLogEntry{
		EntityID:       contract.ID,
		PreviousStatus: string(previous),
		NewStatus:      string(requested),
		ActorID:        actor.ID,
		ActorName:      actor.Name,
		Reason:         reason,
		CreatedAt:      s.now(),
	}
	if err := s.logRepo.Append(ctx, entry); err != nil {
		return nil, err
	}
	return contract, nil
}

// Breakeven re-derives the profitability report from stored fields; nothing
// is persisted, so the figures can never go stale.
func (s *contractService) Breakeven(ctx context.Context, contractID string) (*finance.BreakevenReport, error) {
	contract, err := s.contractRepo.GetByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	return finance.Breakeven(contract, s.now())
}
