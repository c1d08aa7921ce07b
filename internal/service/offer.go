package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"leaseflow-backend/internal/domain"
	"leaseflow-backend/internal/finance"
	"leaseflow-backend/internal/logger"
	"leaseflow-backend/internal/repository"
	"leaseflow-backend/internal/workflow"
)

// calculationFailedMarker prefixes the audit reason when a transition attempt
// is logged but the status write was blocked by a failed recompute.
const calculationFailedMarker = "calculation failed"

type offerService struct {
	offerRepo    repository.OfferRepository
	contractRepo repository.ContractRepository
	logRepo      repository.WorkflowLogRepository
	userRepo     repository.UserRepository
	leaserRepo   repository.LeaserRepository
	levelRepo    repository.CommissionLevelRepository
	docRepo      repository.DocumentRequestRepository
	emailSvc     EmailService
	mandates     PaymentMandateProvider
	coefficients finance.CoefficientResolver
}

// NewOfferService builds the lifecycle engine. The returned value implements
// both OfferService and DocumentService; the document request cycle is a
// sub-flow of the same state machine and shares its persistence rules.
func NewOfferService(
	offerRepo repository.OfferRepository,
	contractRepo repository.ContractRepository,
	logRepo repository.WorkflowLogRepository,
	userRepo repository.UserRepository,
	leaserRepo repository.LeaserRepository,
	levelRepo repository.CommissionLevelRepository,
	docRepo repository.DocumentRequestRepository,
	emailSvc EmailService,
	mandates PaymentMandateProvider,
	coefficients finance.CoefficientResolver,
) *offerService {
	return &offerService{
		offerRepo:    offerRepo,
		contractRepo: contractRepo,
		logRepo:      logRepo,
		userRepo:     userRepo,
		leaserRepo:   leaserRepo,
		levelRepo:    levelRepo,
		docRepo:      docRepo,
		emailSvc:     emailSvc,
		mandates:     mandates,
		coefficients: coefficients,
	}
}

var _ OfferService = (*offerService)(nil)
var _ DocumentService = (*offerService)(nil)

func (s *offerService) CreateOffer(ctx context.Context, actor domain.Actor, offer *domain.Offer) (*domain.Offer, error) {
	if len(offer.Equipment) == 0 {
		return nil, fmt.Errorf("%w: an offer needs at least one equipment line", domain.ErrInvalidInput)
	}
	for _, line := range offer.Equipment {
		if line.PurchasePrice < 0 || line.MonthlyPayment < 0 || line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: equipment line %q", domain.ErrInvalidInput, line.Title)
		}
	}
	offer.UserID = actor.ID
	offer.WorkflowStatus = domain.StatusDraft
	if offer.Type == "" {
		offer.Type = offerTypeForRole(actor.Role)
	}

	if err := s.recompute(ctx, offer); err != nil {
		return nil, err
	}
	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

func offerTypeForRole(role domain.Role) domain.OfferType {
	switch role {
	case domain.RoleAmbassador:
		return domain.OfferTypeAmbassador
	case domain.RolePartner:
		return domain.OfferTypePartner
	default:
		return domain.OfferTypeAdmin
	}
}

func (s *offerService) GetOffer(ctx context.Context, id string) (*domain.Offer, error) {
	return s.offerRepo.GetByID(ctx, id)
}

func (s *offerService) ListOffers(ctx context.Context, userID, status string, page, pageSize int32) ([]domain.Offer, int32, error) {
	return s.offerRepo.ListByUser(ctx, userID, status, page, pageSize)
}

func (s *offerService) History(ctx context.Context, offerID string) ([]domain.WorkflowLogEntry, error) {
	return s.logRepo.ListByEntity(ctx, offerID)
}

// UpdateEquipment replaces the equipment lines of a draft or sent offer and
// refreshes the financial snapshot under the same version guard as a
// transition.
func (s *offerService) UpdateEquipment(ctx context.Context, actor domain.Actor, offerID string, lines []domain.EquipmentLine) (*domain.Offer, error) {
	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.WorkflowStatus != domain.StatusDraft && offer.WorkflowStatus != domain.StatusSent {
		return nil, fmt.Errorf("%w: equipment is frozen once review starts (status %s)",
			domain.ErrInvalidTransition, offer.WorkflowStatus)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: an offer needs at least one equipment line", domain.ErrInvalidInput)
	}

	expectedVersion := offer.Version
	offer.Equipment = lines
	if err := s.recompute(ctx, offer); err != nil {
		return nil, err
	}
	// One transaction: the lines stay untouched when the version moved.
	if err := s.offerRepo.ReplaceEquipment(ctx, offer, expectedVersion); err != nil {
		return nil, err
	}
	return offer, nil
}

// Transition validates the requested edge, recomputes the financial snapshot
// from the current equipment lines and current coefficient, persists status
// and snapshot as one atomic write, and appends a workflow log entry.
//
// Invalid edges fail before any write. A failed recompute appends a marker
// log entry but blocks the status write. A version conflict surfaces as
// ErrConcurrentModification with nothing written.
func (s *offerService) Transition(ctx context.Context, offerID string, requested domain.WorkflowStatus, actor domain.Actor, reason string) (*TransitionResult, error) {
	if requested == domain.StatusInfoRequested {
		return nil, fmt.Errorf("%w: entering info_requested needs a document request with at least one kind",
			domain.ErrInvalidInput)
	}
	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, offer, requested, actor, reason)
}

func (s *offerService) transition(ctx context.Context, offer *domain.Offer, requested domain.WorkflowStatus, actor domain.Actor, reason string) (*TransitionResult, error) {
	if err := s.validateEdge(offer, requested); err != nil {
		return nil, err
	}
	if err := authorizeEdge(offer, requested, actor); err != nil {
		return nil, err
	}
	if requested == domain.StatusRejected && strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: rejecting an offer", domain.ErrMissingJustification)
	}

	previous := offer.WorkflowStatus
	expectedVersion := offer.Version

	// Recompute with the current lines and current coefficient; rate grids
	// may have moved since the last save.
	if err := s.recompute(ctx, offer); err != nil {
		if errors.Is(err, domain.ErrCalculationFailure) {
			// The attempt is still audited; the status write is blocked.
			s.appendLog(ctx, offer.ID, previous, requested, actor,
				fmt.Sprintf("%s: %v", calculationFailedMarker, err))
			return nil, err
		}
		return nil, err
	}

	offer.WorkflowStatus = requested
	if requested == domain.StatusInfoReceived {
		// Keep the remembered status until the resume edge consumes it.
	} else if previous == domain.StatusInfoReceived {
		offer.StatusBeforeInfoRequest = nil
	}

	if err := s.offerRepo.UpdateSnapshot(ctx, offer, expectedVersion); err != nil {
		offer.WorkflowStatus = previous
		return nil, err
	}
	s.appendLog(ctx, offer.ID, previous, requested, actor, reason)

	if requested == domain.StatusApproved || requested == domain.StatusRejected {
		if err := s.emailSvc.SendOfferStatusNotification(ctx, offer.ClientEmail, offer.ID, requested, reason); err != nil {
			logger.Warn("status notification email failed", "offer_id", offer.ID, "error", err)
		}
	}

	result := &TransitionResult{Offer: offer}
	s.runPostTransitionHooks(ctx, offer, requested, actor, result)
	return result, nil
}

// authorizeEdge keeps review, scoring, acceptance and invoicing back-office
// actions. Non-admin actors may only send their own drafts.
func authorizeEdge(offer *domain.Offer, requested domain.WorkflowStatus, actor domain.Actor) error {
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	if offer.WorkflowStatus == domain.StatusDraft && requested == domain.StatusSent && offer.UserID == actor.ID {
		return nil
	}
	return fmt.Errorf("%w: transition to %s requires an administrator", domain.ErrUnauthorized, requested)
}

// validateEdge narrows the static adjacency table with the resume rule: an
// offer leaving info_received may only re-enter the stage it was suspended
// from (or be rejected).
func (s *offerService) validateEdge(offer *domain.Offer, requested domain.WorkflowStatus) error {
	if err := workflow.ValidateOfferTransition(offer.WorkflowStatus, requested); err != nil {
		return err
	}
	if offer.WorkflowStatus == domain.StatusInfoReceived && requested != domain.StatusRejected {
		resume := resumeTarget(offer.StatusBeforeInfoRequest)
		if requested != resume {
			return fmt.Errorf("%w: review resumes at %s, not %s", domain.ErrInvalidTransition, resume, requested)
		}
	}
	return nil
}

// resumeTarget maps the suspended-from status onto the stage review resumes
// at. An offer suspended before review starts resumes at internal review.
func resumeTarget(before *domain.WorkflowStatus) domain.WorkflowStatus {
	if before == nil {
		return domain.StatusInternalReview
	}
	switch *before {
	case domain.StatusInternalReview, domain.StatusLeaserReview:
		return *before
	default:
		return domain.StatusInternalReview
	}
}

// AssignScore maps a reviewer verdict onto the corresponding edge.
func (s *offerService) AssignScore(ctx context.Context, offerID string, score domain.Score, reason string, docKinds []domain.DocumentKind, actor domain.Actor) (*TransitionResult, error) {
	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	target, err := workflow.ScoreTarget(offer.WorkflowStatus, score)
	if err != nil {
		return nil, err
	}
	if err := workflow.RequireReason(score, reason); err != nil {
		return nil, err
	}

	offer.Score = &score
	offer.ScoreReason = reason

	if target == domain.StatusInfoRequested {
		return s.requestDocuments(ctx, offer, docKinds, reason, actor)
	}
	return s.transition(ctx, offer, target, actor, reason)
}

// recompute refreshes the full derived snapshot on the offer in place.
func (s *offerService) recompute(ctx context.Context, offer *domain.Offer) error {
	leaser, err := s.resolveLeaser(ctx, offer)
	if err != nil {
		return err
	}

	coefficient, err := s.coefficients.Resolve(leaser, offer.TotalMonthlyPayment())
	if err != nil {
		return err
	}

	snapshot, err := finance.Compute(offer, coefficient, domain.DefaultContractDurationMonths)
	if err != nil {
		return err
	}

	level, err := s.commissionLevelFor(ctx, offer)
	if err != nil {
		return err
	}
	commission, err := finance.ResolveCommission(snapshot.FinancedAmount, level)
	if err != nil {
		return err
	}

	if snapshot.Discount.Clamped {
		logger.Warn("discount clamped to zero monthly payment", "offer_id", offer.ID)
	}

	offer.Coefficient = snapshot.Coefficient
	offer.FinancedAmount = snapshot.FinancedAmount
	offer.MonthlyPayment = snapshot.MonthlyPayment
	offer.Margin = snapshot.Margin
	offer.AnnualInsurance = snapshot.AnnualInsurance
	offer.Commission = commission.Amount
	offer.CommissionRate = commission.Rate
	if offer.Discount != nil {
		offer.Discount.Amount = snapshot.Discount.Amount
	}
	// FileFee is operator-entered and carried as-is (default 0).
	return nil
}

func (s *offerService) resolveLeaser(ctx context.Context, offer *domain.Offer) (*domain.Leaser, error) {
	if offer.LeaserID != nil {
		return s.leaserRepo.GetByID(ctx, *offer.LeaserID)
	}
	leaser, err := s.leaserRepo.GetDefault(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		// No default leaser configured; the fixed-coefficient strategy can
		// still resolve.
		return nil, nil
	}
	return leaser, err
}

// commissionLevelFor finds the introducing party's commission level; nil
// means the resolver's default policy applies.
func (s *offerService) commissionLevelFor(ctx context.Context, offer *domain.Offer) (*domain.CommissionLevel, error) {
	introducerID := offer.UserID
	if offer.AmbassadorID != nil {
		introducerID = *offer.AmbassadorID
	}
	user, err := s.userRepo.GetByID(ctx, introducerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if user.CommissionLevelID == nil {
		return nil, nil
	}
	level, err := s.levelRepo.GetByID(ctx, *user.CommissionLevelID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return level, err
}

func (s *offerService) appendLog(ctx context.Context, entityID string, previous, next domain.WorkflowStatus, actor domain.Actor, reason string) {
	entry := &domain.WorkflowLogEntry{
		EntityID:       entityID,
		PreviousStatus: string(previous),
		NewStatus:      string(next),
		ActorID:        actor.ID,
		ActorName:      actor.Name,
		Reason:         reason,
		CreatedAt:      time.Now(),
	}
	if err := s.logRepo.Append(ctx, entry); err != nil {
		logger.Error("failed to append workflow log", "entity_id", entityID, "error", err)
	}
}

// runPostTransitionHooks handles the contract-creating and invoicing edges.
// Failures here never roll the transition back; they surface as warnings.
func (s *offerService) runPostTransitionHooks(ctx context.Context, offer *domain.Offer, requested domain.WorkflowStatus, actor domain.Actor, result *TransitionResult) {
	switch requested {
	case domain.StatusAccepted, domain.StatusContractSigned:
		if err := s.createContract(ctx, offer, actor); err != nil {
			logger.Error("contract creation after acceptance failed", "offer_id", offer.ID, "error", err)
			result.Warning = fmt.Sprintf("offer accepted but contract creation failed: %v", err)
		}
	case domain.StatusInvoiced:
		contract, err := s.contractRepo.GetByOfferID(ctx, offer.ID)
		if err != nil {
			result.Warning = fmt.Sprintf("offer invoiced but no contract found: %v", err)
			return
		}
		if err := s.mandates.GenerateInvoice(ctx, contract.ID); err != nil {
			logger.Warn("invoice generation failed", "contract_id", contract.ID, "provider", s.mandates.Name(), "error", err)
			result.Warning = fmt.Sprintf("invoice generation failed: %v", err)
		}
	}
}

func (s *offerService) createContract(ctx context.Context, offer *domain.Offer, actor domain.Actor) error {
	if _, err := s.contractRepo.GetByOfferID(ctx, offer.ID); err == nil {
		return nil // one-to-one; already converted
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	now := time.Now()
	contract := &domain.Contract{
		OfferID:           offer.ID,
		ClientID:          offer.ClientID,
		LeaserID:          offer.LeaserID,
		MonthlyPayment:    offer.MonthlyPayment,
		EquipmentCost:     offer.TotalPurchaseCost(),
		ContractStartDate: &now,
		ContractDuration:  domain.DefaultContractDurationMonths,
		Status:            domain.ContractStatusActive,
		Equipment:         offer.Equipment,
	}
	if err := s.contractRepo.Create(ctx, contract); err != nil {
		return err
	}
	s.appendLog(ctx, contract.ID, "", domain.WorkflowStatus(domain.ContractStatusActive), actor,
		fmt.Sprintf("contract created from offer %s", offer.ID))

	if err := s.mandates.CreateMandate(ctx, contract.ID); err != nil {
		logger.Warn("mandate creation failed", "contract_id", contract.ID, "provider", s.mandates.Name(), "error", err)
	} else if err := s.mandates.CreateSubscription(ctx, contract.ID); err != nil {
		logger.Warn("subscription creation failed", "contract_id", contract.ID, "provider", s.mandates.Name(), "error", err)
	}
	return nil
}
