package repository

import (
	"context"

	"leaseflow-backend/internal/domain"
)

type OfferRepository interface {
	Create(ctx context.Context, offer *domain.Offer) error
	GetByID(ctx context.Context, id string) (*domain.Offer, error)
	// UpdateSnapshot persists status + financial snapshot + score fields as
	// one atomic write guarded by the optimistic version; it returns
	// domain.ErrConcurrentModification when the row's version moved.
	UpdateSnapshot(ctx context.Context, offer *domain.Offer, expectedVersion int64) error
	// ReplaceEquipment swaps the equipment lines and writes the recomputed
	// snapshot in the same version-guarded transaction, so the stored
	// financials can never disagree with the stored lines.
	ReplaceEquipment(ctx context.Context, offer *domain.Offer, expectedVersion int64) error
	ListByUser(ctx context.Context, userID string, status string, page, pageSize int32) ([]domain.Offer, int32, error)
	ListByStatus(ctx context.Context, status domain.WorkflowStatus) ([]domain.Offer, error)
}

type ContractRepository interface {
	Create(ctx context.Context, contract *domain.Contract) error
	GetByID(ctx context.Context, id string) (*domain.Contract, error)
	GetByOfferID(ctx context.Context, offerID string) (*domain.Contract, error)
	UpdateStatus(ctx context.Context, contract *domain.Contract, expectedVersion int64) error
	ListByStatus(ctx context.Context, status domain.ContractStatus) ([]domain.Contract, error)
}

type LeaserRepository interface {
	Create(ctx context.Context, leaser *domain.Leaser) error
	GetByID(ctx context.Context, id string) (*domain.Leaser, error)
	GetDefault(ctx context.Context) (*domain.Leaser, error)
	List(ctx context.Context) ([]domain.Leaser, error)
	Update(ctx context.Context, leaser *domain.Leaser) error
	// SetDefault promotes one leaser and clears the previous default in the
	// same transaction.
	SetDefault(ctx context.Context, id string) error
	ReplaceRanges(ctx context.Context, leaserID string, ranges []domain.Range) error
}

type CommissionLevelRepository interface {
	Create(ctx context.Context, level *domain.CommissionLevel) error
	GetByID(ctx context.Context, id string) (*domain.CommissionLevel, error)
	List(ctx context.Context) ([]domain.CommissionLevel, error)
	ReplaceRates(ctx context.Context, levelID string, rates []domain.CommissionRate) error
}

// WorkflowLogRepository is append-only; entries are never updated or
// deleted.
type WorkflowLogRepository interface {
	Append(ctx context.Context, entry *domain.WorkflowLogEntry) error
	ListByEntity(ctx context.Context, entityID string) ([]domain.WorkflowLogEntry, error)
}

type DocumentRequestRepository interface {
	Create(ctx context.Context, req *domain.DocumentRequest) error
	GetOpenByOffer(ctx context.Context, offerID string) (*domain.DocumentRequest, error)
	Update(ctx context.Context, req *domain.DocumentRequest) error
	AddDocument(ctx context.Context, doc *domain.UploadedDocument) error
	ListOpenOlderThan(ctx context.Context, days int) ([]domain.DocumentRequest, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
