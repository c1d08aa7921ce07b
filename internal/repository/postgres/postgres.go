package postgres

import (
	"database/sql"

	"leaseflow-backend/internal/repository"

	_ "github.com/lib/pq"
)

// Store bundles all postgres-backed repositories over one connection pool.
type Store struct {
	db *sql.DB

	Offers           repository.OfferRepository
	Contracts        repository.ContractRepository
	Leasers          repository.LeaserRepository
	CommissionLevels repository.CommissionLevelRepository
	WorkflowLogs     repository.WorkflowLogRepository
	DocumentRequests repository.DocumentRequestRepository
	Users            repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:               db,
		Offers:           NewOfferRepository(db),
		Contracts:        NewContractRepository(db),
		Leasers:          NewLeaserRepository(db),
		CommissionLevels: NewCommissionLevelRepository(db),
		WorkflowLogs:     NewWorkflowLogRepository(db),
		DocumentRequests: NewDocumentRequestRepository(db),
		Users:            NewUserRepository(db),
	}
}
