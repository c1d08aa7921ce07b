package service

import (
	"context"

	"leaseflow-backend/internal/domain"
	"leaseflow-backend/internal/finance"
)

// TransitionResult reports a successful transition. Warning carries a
// non-fatal side-effect failure (e.g. the document request email did not go
// out); the business transition itself succeeded.
type TransitionResult struct {
	Offer   *domain.Offer `json:"offer"`
	Warning string        `json:"warning,omitempty"`
}

type OfferService interface {
	CreateOffer(ctx context.Context, actor domain.Actor, offer *domain.Offer) (*domain.Offer, error)
	GetOffer(ctx context.Context, id string) (*domain.Offer, error)
	ListOffers(ctx context.Context, userID, status string, page, pageSize int32) ([]domain.Offer, int32, error)
	UpdateEquipment(ctx context.Context, actor domain.Actor, offerID string, lines []domain.EquipmentLine) (*domain.Offer, error)

	// Transition moves the offer along one edge of the workflow, recomputing
	// the financial snapshot and appending a log entry. All-or-nothing for
	// the offer.
	Transition(ctx context.Context, offerID string, requested domain.WorkflowStatus, actor domain.Actor, reason string) (*TransitionResult, error)

	// AssignScore records a reviewer verdict: A advances, B requests
	// documents, C rejects. B and C require a reason; B additionally needs a
	// non-empty set of document kinds to request.
	AssignScore(ctx context.Context, offerID string, score domain.Score, reason string, docKinds []domain.DocumentKind, actor domain.Actor) (*TransitionResult, error)

	History(ctx context.Context, offerID string) ([]domain.WorkflowLogEntry, error)
}

type DocumentService interface {
	// RequestDocuments suspends the offer at info_requested, records the
	// requested kinds and emails the client. Email failure surfaces as a
	// warning, not a rollback.
	RequestDocuments(ctx context.Context, offerID string, kinds []domain.DocumentKind, customMessage string, actor domain.Actor) (*TransitionResult, error)

	// RecordUpload stores one uploaded file against the open request; when
	// the last missing kind arrives the offer moves to info_received.
	RecordUpload(ctx context.Context, offerID string, kind domain.DocumentKind, fileName, storageKey string, fileSize int64, mimeType string) (*domain.DocumentRequest, error)

	// MarkReceived forces completion for documents delivered out of band.
	MarkReceived(ctx context.Context, offerID string, actor domain.Actor) (*TransitionResult, error)
}

type ContractService interface {
	GetContract(ctx context.Context, id string) (*domain.Contract, error)
	// Terminate completes a contract with an optional free-text reason.
	Terminate(ctx context.Context, contractID string, reason string, actor domain.Actor) (*domain.Contract, error)
	// Extend moves an active contract to extended.
	Extend(ctx context.Context, contractID string, actor domain.Actor) (*domain.Contract, error)
	// Reactivate reopens a completed contract as extended, allowed only once
	// its end date has lapsed.
	Reactivate(ctx context.Context, contractID string, actor domain.Actor) (*domain.Contract, error)
	// Breakeven derives the profitability report; nothing is persisted.
	Breakeven(ctx context.Context, contractID string) (*finance.BreakevenReport, error)
	History(ctx context.Context, contractID string) ([]domain.WorkflowLogEntry, error)
}

type CommissionService interface {
	// Preview resolves a commission without persisting anything.
	Preview(ctx context.Context, financedAmount int64, levelID string) (*finance.Commission, error)
	CreateLevel(ctx context.Context, level *domain.CommissionLevel) error
	GetLevel(ctx context.Context, id string) (*domain.CommissionLevel, error)
	ListLevels(ctx context.Context) ([]domain.CommissionLevel, error)
	ReplaceRates(ctx context.Context, levelID string, rates []domain.CommissionRate) error
}

type LeaserService interface {
	CreateLeaser(ctx context.Context, leaser *domain.Leaser) error
	GetLeaser(ctx context.Context, id string) (*domain.Leaser, error)
	ListLeasers(ctx context.Context) ([]domain.Leaser, error)
	SetDefault(ctx context.Context, id string) error
	ReplaceRanges(ctx context.Context, leaserID string, ranges []domain.Range) error
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	CreateUser(ctx context.Context, actor domain.Actor, user *domain.User, password string) (*domain.User, error)
}

type EmailService interface {
	SendDocumentRequestEmail(ctx context.Context, clientEmail, offerID string, kinds []domain.DocumentKind, customMessage string) error
	SendOfferStatusNotification(ctx context.Context, email, offerID string, status domain.WorkflowStatus, reason string) error
	SendDocumentReminderEmail(ctx context.Context, clientEmail, offerID string, missing []domain.DocumentKind) error
	SendContractLapsedNotification(ctx context.Context, email, contractID string) error
}

// PaymentMandateProvider is the boundary to Mollie/GoCardless/Billit. Every
// operation is idempotent keyed by contract ID.
type PaymentMandateProvider interface {
	Name() string
	CreateMandate(ctx context.Context, contractID string) error
	CreateSubscription(ctx context.Context, contractID string) error
	GenerateInvoice(ctx context.Context, contractID string) error
}
