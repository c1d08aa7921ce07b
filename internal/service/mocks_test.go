package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"leaseflow-backend/internal/domain"
)

// MockOfferRepo
type MockOfferRepo struct {
	mock.Mock
}

func (m *MockOfferRepo) Create(ctx context.Context, offer *domain.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}
func (m *MockOfferRepo) GetByID(ctx context.Context, id string) (*domain.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}
func (m *MockOfferRepo) UpdateSnapshot(ctx context.Context, offer *domain.Offer, expectedVersion int64) error {
	args := m.Called(ctx, offer, expectedVersion)
	return args.Error(0)
}
func (m *MockOfferRepo) ReplaceEquipment(ctx context.Context, offer *domain.Offer, expectedVersion int64) error {
	args := m.Called(ctx, offer, expectedVersion)
	return args.Error(0)
}
func (m *MockOfferRepo) ListByUser(ctx context.Context, userID string, status string, page, pageSize int32) ([]domain.Offer, int32, error) {
	args := m.Called(ctx, userID, status, page, pageSize)
	return args.Get(0).([]domain.Offer), args.Get(1).(int32), args.Error(2)
}
func (m *MockOfferRepo) ListByStatus(ctx context.Context, status domain.WorkflowStatus) ([]domain.Offer, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Offer), args.Error(1)
}

// MockContractRepo
type MockContractRepo struct {
	mock.Mock
}

func (m *MockContractRepo) Create(ctx context.Context, contract *domain.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}
func (m *MockContractRepo) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractRepo) GetByOfferID(ctx context.Context, offerID string) (*domain.Contract, error) {
	args := m.Called(ctx, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractRepo) UpdateStatus(ctx context.Context, contract *domain.Contract, expectedVersion int64) error {
	args := m.Called(ctx, contract, expectedVersion)
	return args.Error(0)
}
func (m *MockContractRepo) ListByStatus(ctx context.Context, status domain.ContractStatus) ([]domain.Contract, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Contract), args.Error(1)
}

// MockLeaserRepo
type MockLeaserRepo struct {
	mock.Mock
}

func (m *MockLeaserRepo) Create(ctx context.Context, leaser *domain.Leaser) error {
	args := m.Called(ctx, leaser)
	return args.Error(0)
}
func (m *MockLeaserRepo) GetByID(ctx context.Context, id string) (*domain.Leaser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Leaser), args.Error(1)
}
func (m *MockLeaserRepo) GetDefault(ctx context.Context) (*domain.Leaser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Leaser), args.Error(1)
}
func (m *MockLeaserRepo) List(ctx context.Context) ([]domain.Leaser, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Leaser), args.Error(1)
}
func (m *MockLeaserRepo) Update(ctx context.Context, leaser *domain.Leaser) error {
	args := m.Called(ctx, leaser)
	return args.Error(0)
}
func (m *MockLeaserRepo) SetDefault(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockLeaserRepo) ReplaceRanges(ctx context.Context, leaserID string, ranges []domain.Range) error {
	args := m.Called(ctx, leaserID, ranges)
	return args.Error(0)
}

// MockCommissionLevelRepo
type MockCommissionLevelRepo struct {
	mock.Mock
}

func (m *MockCommissionLevelRepo) Create(ctx context.Context, level *domain.CommissionLevel) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}
func (m *MockCommissionLevelRepo) GetByID(ctx context.Context, id string) (*domain.CommissionLevel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommissionLevel), args.Error(1)
}
func (m *MockCommissionLevelRepo) List(ctx context.Context) ([]domain.CommissionLevel, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.CommissionLevel), args.Error(1)
}
func (m *MockCommissionLevelRepo) ReplaceRates(ctx context.Context, levelID string, rates []domain.CommissionRate) error {
	args := m.Called(ctx, levelID, rates)
	return args.Error(0)
}

// MockWorkflowLogRepo
type MockWorkflowLogRepo struct {
	mock.Mock
}

func (m *MockWorkflowLogRepo) Append(ctx context.Context, entry *domain.WorkflowLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockWorkflowLogRepo) ListByEntity(ctx context.Context, entityID string) ([]domain.WorkflowLogEntry, error) {
	args := m.Called(ctx, entityID)
	return args.Get(0).([]domain.WorkflowLogEntry), args.Error(1)
}

// MockDocumentRequestRepo
type MockDocumentRequestRepo struct {
	mock.Mock
}

func (m *MockDocumentRequestRepo) Create(ctx context.Context, req *domain.DocumentRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockDocumentRequestRepo) GetOpenByOffer(ctx context.Context, offerID string) (*domain.DocumentRequest, error) {
	args := m.Called(ctx, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentRequest), args.Error(1)
}
func (m *MockDocumentRequestRepo) Update(ctx context.Context, req *domain.DocumentRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockDocumentRequestRepo) AddDocument(ctx context.Context, doc *domain.UploadedDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}
func (m *MockDocumentRequestRepo) ListOpenOlderThan(ctx context.Context, days int) ([]domain.DocumentRequest, error) {
	args := m.Called(ctx, days)
	return args.Get(0).([]domain.DocumentRequest), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendDocumentRequestEmail(ctx context.Context, clientEmail, offerID string, kinds []domain.DocumentKind, customMessage string) error {
	args := m.Called(ctx, clientEmail, offerID, kinds, customMessage)
	return args.Error(0)
}
func (m *MockEmailService) SendOfferStatusNotification(ctx context.Context, email, offerID string, status domain.WorkflowStatus, reason string) error {
	args := m.Called(ctx, email, offerID, status, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendDocumentReminderEmail(ctx context.Context, clientEmail, offerID string, missing []domain.DocumentKind) error {
	args := m.Called(ctx, clientEmail, offerID, missing)
	return args.Error(0)
}
func (m *MockEmailService) SendContractLapsedNotification(ctx context.Context, email, contractID string) error {
	args := m.Called(ctx, email, contractID)
	return args.Error(0)
}

// MockMandateProvider
type MockMandateProvider struct {
	mock.Mock
}

func (m *MockMandateProvider) Name() string {
	return "mock"
}
func (m *MockMandateProvider) CreateMandate(ctx context.Context, contractID string) error {
	args := m.Called(ctx, contractID)
	return args.Error(0)
}
func (m *MockMandateProvider) CreateSubscription(ctx context.Context, contractID string) error {
	args := m.Called(ctx, contractID)
	return args.Error(0)
}
func (m *MockMandateProvider) GenerateInvoice(ctx context.Context, contractID string) error {
	args := m.Called(ctx, contractID)
	return args.Error(0)
}
