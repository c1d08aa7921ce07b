package service

import (
	"context"
	"fmt"
	"time"

	"leaseflow-backend/internal/domain"
	"leaseflow-backend/internal/logger"
	"leaseflow-backend/internal/workflow"
)

// systemActor stamps transitions driven by the platform itself, such as the
// automatic move to info_received once the last document arrives.
var systemActor = domain.Actor{ID: "system", Name: "System", Role: domain.RoleAdmin}

// RequestDocuments suspends the pipeline at info_requested. The offer
// remembers where it was suspended from so review resumes there. The email
// to the client is best-effort: a delivery failure surfaces as a warning on
// an otherwise successful transition.
func (s *offerService) RequestDocuments(ctx context.Context, offerID string, kinds []domain.DocumentKind, customMessage string, actor domain.Actor) (*TransitionResult, error) {
	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	return s.requestDocuments(ctx, offer, kinds, customMessage, actor)
}

func (s *offerService) requestDocuments(ctx context.Context, offer *domain.Offer, kinds []domain.DocumentKind, customMessage string, actor domain.Actor) (*TransitionResult, error) {
	if len(kinds) == 0 {
		return nil, fmt.Errorf("%w: at least one document kind is required", domain.ErrInvalidInput)
	}
	for _, k := range kinds {
		if !k.IsValid() {
			return nil, fmt.Errorf("%w: unknown document kind %q", domain.ErrInvalidInput, k)
		}
	}
	if err := workflow.ValidateOfferTransition(offer.WorkflowStatus, domain.StatusInfoRequested); err != nil {
		return nil, err
	}

	previous := offer.WorkflowStatus
	offer.StatusBeforeInfoRequest = &previous

	result, err := s.transition(ctx, offer, domain.StatusInfoRequested, actor, customMessage)
	if err != nil {
		offer.StatusBeforeInfoRequest = nil
		return nil, err
	}

	request := &domain.DocumentRequest{
		OfferID:        offer.ID,
		PreviousStatus: previous,
		Requested:      kinds,
		CustomMessage:  customMessage,
		Status:         domain.DocumentRequestOpen,
	}
	if err := s.docRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	if err := s.emailSvc.SendDocumentRequestEmail(ctx, offer.ClientEmail, offer.ID, kinds, customMessage); err != nil {
		// Documents were still legitimately requested; the caller retries
		// or alerts.
		logger.Warn("document request email failed", "offer_id", offer.ID, "error", err)
		result.Warning = fmt.Sprintf("document request email failed: %v", err)
	}
	return result, nil
}

// RecordUpload attaches one stored file to the open request. When the last
// missing kind arrives the request completes and the offer moves to
// info_received.
func (s *offerService) RecordUpload(ctx context.Context, offerID string, kind domain.DocumentKind, fileName, storageKey string, fileSize int64, mimeType string) (*domain.DocumentRequest, error) {
	request, err := s.docRepo.GetOpenByOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if !containsKind(request.Requested, kind) {
		return nil, fmt.Errorf("%w: document kind %q was not requested", domain.ErrInvalidInput, kind)
	}

	doc := &domain.UploadedDocument{
		RequestID:  request.ID,
		OfferID:    offerID,
		Kind:       kind,
		FileName:   fileName,
		StorageKey: storageKey,
		FileSize:   fileSize,
		MimeType:   mimeType,
	}
	if err := s.docRepo.AddDocument(ctx, doc); err != nil {
		return nil, err
	}

	if !containsKind(request.Fulfilled, kind) {
		request.Fulfilled = append(request.Fulfilled, kind)
	}

	if len(request.Missing()) == 0 {
		return request, s.completeRequest(ctx, request, systemActor)
	}
	return request, s.docRepo.Update(ctx, request)
}

// MarkReceived completes the cycle for documents delivered out of band
// (post, in person).
func (s *offerService) MarkReceived(ctx context.Context, offerID string, actor domain.Actor) (*TransitionResult, error) {
	request, err := s.docRepo.GetOpenByOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	request.Fulfilled = request.Requested
	if err := s.completeRequest(ctx, request, actor); err != nil {
		return nil, err
	}
	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	return &TransitionResult{Offer: offer}, nil
}

func (s *offerService) completeRequest(ctx context.Context, request *domain.DocumentRequest, actor domain.Actor) error {
	now := time.Now()
	request.Status = domain.DocumentRequestCompleted
	request.CompletedAt = &now
	if err := s.docRepo.Update(ctx, request); err != nil {
		return err
	}

	offer, err := s.offerRepo.GetByID(ctx, request.OfferID)
	if err != nil {
		return err
	}
	if offer.WorkflowStatus != domain.StatusInfoRequested {
		return nil // cycle already resolved elsewhere
	}
	_, err = s.transition(ctx, offer, domain.StatusInfoReceived, actor, "all requested documents received")
	return err
}

func containsKind(kinds []domain.DocumentKind, kind domain.DocumentKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
