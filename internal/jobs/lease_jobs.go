package jobs

import (
	"context"
	"time"

	"leaseflow-backend/internal/domain"
	"leaseflow-backend/internal/logger"
)

// SendDocumentRequestReminders emails clients whose document request is
// still open past the configured age.
func (jr *JobRunner) SendDocumentRequestReminders() {
	jr.runWithRecovery("SendDocumentRequestReminders", func() {
		ctx := context.Background()
		days := jr.config.Scheduler.DocumentReminderDays

		requests, err := jr.store.DocumentRequests.ListOpenOlderThan(ctx, days)
		if err != nil {
			logger.Error("Failed to list open document requests", "error", err)
			return
		}

		count := 0
		for _, req := range requests {
			missing := req.Missing()
			if len(missing) == 0 {
				continue
			}

			offer, err := jr.store.Offers.GetByID(ctx, req.OfferID)
			if err != nil {
				logger.Error("Failed to load offer for reminder", "offer_id", req.OfferID, "error", err)
				continue
			}
			if offer.ClientEmail == "" {
				logger.Warn("Offer has no client email, skipping reminder", "offer_id", offer.ID)
				continue
			}

			if err := jr.services.Email.SendDocumentReminderEmail(ctx, offer.ClientEmail, offer.ID, missing); err != nil {
				logger.Error("Failed to send document reminder", "offer_id", offer.ID, "error", err)
				continue
			}
			count++
		}

		logger.Info("Sent document request reminders", "count", count, "older_than_days", days)
	})
}

// CheckLapsedContracts notifies the owning user when an active or extended
// contract has passed its end date. The contract stays in its current state;
// completion remains an explicit user action.
func (jr *JobRunner) CheckLapsedContracts() {
	jr.runWithRecovery("CheckLapsedContracts", func() {
		ctx := context.Background()
		now := time.Now()

		var lapsed []domain.Contract
		for _, status := range []domain.ContractStatus{domain.ContractStatusActive, domain.ContractStatusExtended} {
			contracts, err := jr.store.Contracts.ListByStatus(ctx, status)
			if err != nil {
				logger.Error("Failed to list contracts", "status", status, "error", err)
				return
			}
			for _, c := range contracts {
				if end := c.EndDate(); end != nil && end.Before(now) {
					lapsed = append(lapsed, c)
				}
			}
		}

		count := 0
		for _, contract := range lapsed {
			offer, err := jr.store.Offers.GetByID(ctx, contract.OfferID)
			if err != nil {
				logger.Error("Failed to load offer for lapsed contract", "contract_id", contract.ID, "error", err)
				continue
			}

			user, err := jr.store.Users.GetByID(ctx, offer.UserID)
			if err != nil {
				logger.Error("Failed to load user for lapsed contract", "contract_id", contract.ID, "error", err)
				continue
			}

			if err := jr.services.Email.SendContractLapsedNotification(ctx, user.Email, contract.ID); err != nil {
				logger.Error("Failed to send lapsed contract notification", "contract_id", contract.ID, "error", err)
				continue
			}
			count++
		}

		logger.Info("Checked lapsed contracts", "lapsed", len(lapsed), "notified", count)
	})
}
