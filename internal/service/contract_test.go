package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"leaseflow-backend/internal/domain"
)

func fixedNow() time.Time {
	return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
}

func newTestContractService() (*contractService, *MockContractRepo, *MockWorkflowLogRepo) {
	contracts := new(MockContractRepo)
	logs := new(MockWorkflowLogRepo)
	svc := NewContractService(contracts, logs).(*contractService)
	svc.now = fixedNow
	return svc, contracts, logs
}

func testContract(status domain.ContractStatus, start time.Time) *domain.Contract {
	return &domain.Contract{
		ID:                "contract-1",
		OfferID:           "offer-1",
		ClientID:          "client-1",
		MonthlyPayment:    109,
		EquipmentCost:     3270,
		ContractStartDate: &start,
		ContractDuration:  36,
		Status:            status,
		Version:           2,
	}
}

func TestContractService_Terminate(t *testing.T) {
	ctx := context.Background()
	svc, contracts, logs := newTestContractService()

	contract := testContract(domain.ContractStatusActive, fixedNow().AddDate(-1, 0, 0))
	contracts.On("GetByID", ctx, "contract-1").Return(contract, nil)
	contracts.On("UpdateStatus", ctx, mock.MatchedBy(func(c *domain.Contract) bool {
		return c.Status == domain.ContractStatusCompleted && c.TerminationReason == "client bought out"
	}), int64(2)).Return(nil).Once()
	logs.On("Append", ctx, mock.MatchedBy(func(e *domain.WorkflowLogEntry) bool {
		return e.EntityID == "contract-1" && e.PreviousStatus == "active" && e.NewStatus == "completed"
	})).Return(nil).Once()

	updated, err := svc.Terminate(ctx, "contract-1", "client bought out", reviewer)
	require.NoError(t, err)
	assert.Equal(t, domain.ContractStatusCompleted, updated.Status)
	contracts.AssertExpectations(t)
	logs.AssertExpectations(t)
}

func TestContractService_Extend(t *testing.T) {
	ctx := context.Background()
	svc, contracts, logs := newTestContractService()

	contract := testContract(domain.ContractStatusActive, fixedNow().AddDate(-3, 0, 0))
	contracts.On("GetByID", ctx, "contract-1").Return(contract, nil)
	contracts.On("UpdateStatus", ctx, mock.Anything, int64(2)).Return(nil)
	logs.On("Append", ctx, mock.Anything).Return(nil)

	updated, err := svc.Extend(ctx, "contract-1", reviewer)
	require.NoError(t, err)
	assert.Equal(t, domain.ContractStatusExtended, updated.Status)
}

func TestContractService_ExtendCannotReopenCompleted(t *testing.T) {
	ctx := context.Background()

	t.Run("NotYetLapsed", func(t *testing.T) {
		svc, contracts, _ := newTestContractService()
		contract := testContract(domain.ContractStatusCompleted, fixedNow().AddDate(-1, 0, 0))
		contracts.On("GetByID", ctx, "contract-1").Return(contract, nil)

		_, err := svc.Extend(ctx, "contract-1", reviewer)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Equal(t, domain.ContractStatusCompleted, contract.Status)
		contracts.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("EvenWhenLapsed", func(t *testing.T) {
		svc, contracts, _ := newTestContractService()
		contract := testContract(domain.ContractStatusCompleted, fixedNow().AddDate(-4, 0, 0))
		contracts.On("GetByID", ctx, "contract-1").Return(contract, nil)

		_, err := svc.Extend(ctx, "contract-1", reviewer)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		contracts.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestContractService_Reactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("LapsedContractReopensAsExtended", func(t *testing.T) {
		svc, contracts, logs := newTestContractService()
		// 36-month contract that started 4 years ago has lapsed.
		contract := testContract(domain.ContractStatusCompleted, fixedNow().AddDate(-4, 0, 0))
		contracts.On("GetByID", ctx, "contract-1").Return(contract, nil)
		contracts.On("UpdateStatus", ctx, mock.Anything, int64(2)).Return(nil)
		logs.On("Append", ctx, mock.MatchedBy(func(e *domain.WorkflowLogEntry) bool {
			return e.PreviousStatus == "completed" && e.NewStatus == "extended"
		})).Return(nil).Once()

		updated, err := svc.Reactivate(ctx, "contract-1", reviewer)
		require.NoError(t, err)
		assert.Equal(t, domain.ContractStatusExtended, updated.Status)
		logs.AssertExpectations(t)
	})

	t.Run("NotYetLapsed", func(t *testing.T) {
		svc, contracts, _ := newTestContractService()
		// Terminated early; end date is still in the future.
		contract := testContract(domain.ContractStatusCompleted, fixedNow().AddDate(-1, 0, 0))
		contracts.On("GetByID", ctx, "contract-1").Return(contract, nil)

		_, err := svc.Reactivate(ctx, "contract-1", reviewer)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		contracts.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NoStartDate", func(t *testing.T) {
		svc, contracts, _ := newTestContractService()
		contract := testContract(domain.ContractStatusCompleted, fixedNow())
		contract.ContractStartDate = nil
		contracts.On("GetByID", ctx, "contract-1").Return(contract, nil)

		_, err := svc.Reactivate(ctx, "contract-1", reviewer)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestContractService_InvalidTransitions(t *testing.T) {
	ctx := context.Background()
	svc, contracts, _ := newTestContractService()

	contract := testContract(domain.ContractStatusExtended, fixedNow().AddDate(-1, 0, 0))
	contracts.On("GetByID", ctx, "contract-1").Return(contract, nil)

	_, err := svc.Extend(ctx, "contract-1", reviewer)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestContractService_ConcurrentModification(t *testing.T) {
	ctx := context.Background()
	svc, contracts, logs := newTestContractService()

	contract := testContract(domain.ContractStatusActive, fixedNow().AddDate(-1, 0, 0))
	contracts.On("GetByID", ctx, "contract-1").Return(contract, nil)
	contracts.On("UpdateStatus", ctx, mock.Anything, int64(2)).Return(domain.ErrConcurrentModification)

	_, err := svc.Terminate(ctx, "contract-1", "reason", reviewer)
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)
	assert.Equal(t, domain.ContractStatusActive, contract.Status)
	logs.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestContractService_Breakeven(t *testing.T) {
	ctx := context.Background()
	svc, contracts, _ := newTestContractService()

	// 32 whole months elapsed by the fixed clock.
	start := time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC)
	contract := testContract(domain.ContractStatusActive, start)
	contracts.On("GetByID", ctx, "contract-1").Return(contract, nil)

	report, err := svc.Breakeven(ctx, "contract-1")
	require.NoError(t, err)
	assert.Equal(t, int64(30), report.BreakevenMonths)
	assert.Equal(t, int64(32), report.MonthsElapsed)
	assert.True(t, report.IsProfitable)
	assert.Equal(t, int64(218), report.NetProfitAfterBreakeven)
}
