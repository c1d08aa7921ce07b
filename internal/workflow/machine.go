package workflow

import (
	"fmt"
	"strings"

	"leaseflow-backend/internal/domain"
)

// OfferTransitions is the adjacency table for the offer pipeline. A missing
// entry or empty set means the status is terminal.
var OfferTransitions = map[domain.WorkflowStatus]map[domain.WorkflowStatus]bool{
	domain.StatusDraft: {domain.StatusSent: true},
	domain.StatusSent: {
		domain.StatusInfoRequested:  true,
		domain.StatusInternalReview: true,
		domain.StatusRejected:       true,
	},
	domain.StatusInfoRequested: {domain.StatusInfoReceived: true},
	// info_received resumes from the remembered pre-request status; the
	// service narrows this set further against that status.
	domain.StatusInfoReceived: {
		domain.StatusInternalReview: true,
		domain.StatusLeaserReview:   true,
		domain.StatusRejected:       true,
	},
	domain.StatusInternalReview: {
		domain.StatusLeaserReview:  true,
		domain.StatusInfoRequested: true,
		domain.StatusRejected:      true,
	},
	domain.StatusLeaserReview: {
		domain.StatusApproved:      true,
		domain.StatusInfoRequested: true,
		domain.StatusRejected:      true,
	},
	domain.StatusApproved: {
		domain.StatusAccepted:       true,
		domain.StatusContractSigned: true,
		domain.StatusRejected:       true,
	},
	domain.StatusAccepted:       {domain.StatusInvoiced: true},
	domain.StatusContractSigned: {domain.StatusInvoiced: true},
	domain.StatusInvoiced:       {},
	domain.StatusRejected:       {},
}

// ContractTransitions covers the post-acceptance lifecycle. The
// completed -> extended edge (reactivation) carries an extra guard in the
// service: the contract end date must already have lapsed.
var ContractTransitions = map[domain.ContractStatus]map[domain.ContractStatus]bool{
	domain.ContractStatusActive: {
		domain.ContractStatusExtended:  true,
		domain.ContractStatusCompleted: true,
	},
	domain.ContractStatusExtended: {
		domain.ContractStatusCompleted: true,
	},
	domain.ContractStatusCompleted: {
		domain.ContractStatusExtended: true,
	},
}

// ValidateOfferTransition checks the requested edge against the adjacency
// table.
func ValidateOfferTransition(current, requested domain.WorkflowStatus) error {
	nexts, ok := OfferTransitions[current]
	if !ok || !nexts[requested] {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current, requested)
	}
	return nil
}

// ValidateContractTransition checks the requested contract edge.
func ValidateContractTransition(current, requested domain.ContractStatus) error {
	nexts, ok := ContractTransitions[current]
	if !ok || !nexts[requested] {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current, requested)
	}
	return nil
}

// ScoreTarget maps a reviewer verdict in the given review state onto the
// resulting edge: A advances, B requests documents, C rejects.
func ScoreTarget(current domain.WorkflowStatus, score domain.Score) (domain.WorkflowStatus, error) {
	if !current.IsReview() {
		return "", fmt.Errorf("%w: cannot score an offer in %s", domain.ErrInvalidTransition, current)
	}
	switch score {
	case domain.ScoreA:
		if current == domain.StatusInternalReview {
			return domain.StatusLeaserReview, nil
		}
		return domain.StatusApproved, nil
	case domain.ScoreB:
		return domain.StatusInfoRequested, nil
	case domain.ScoreC:
		return domain.StatusRejected, nil
	}
	return "", fmt.Errorf("%w: unknown score %q", domain.ErrInvalidInput, score)
}

// RequireReason enforces the justification rule: scores B and C need a
// non-empty, non-whitespace reason; score A does not.
func RequireReason(score domain.Score, reason string) error {
	if score == domain.ScoreA {
		return nil
	}
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%w: score %s", domain.ErrMissingJustification, score)
	}
	return nil
}
