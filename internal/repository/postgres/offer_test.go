package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaseflow-backend/internal/domain"
)

func TestOfferRepository_UpdateSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewOfferRepository(db)

		offer := &domain.Offer{
			ID:             "offer-1",
			WorkflowStatus: domain.StatusSent,
			FinancedAmount: 327,
			Version:        3,
		}

		mock.ExpectExec("UPDATE offers SET").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.UpdateSnapshot(ctx, offer, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(4), offer.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("VersionConflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewOfferRepository(db)

		offer := &domain.Offer{ID: "offer-1", WorkflowStatus: domain.StatusSent, Version: 3}

		mock.ExpectExec("UPDATE offers SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.UpdateSnapshot(ctx, offer, 3)
		assert.ErrorIs(t, err, domain.ErrConcurrentModification)
		assert.Equal(t, int64(3), offer.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOfferRepository_ReplaceEquipment(t *testing.T) {
	ctx := context.Background()

	t.Run("SwapsLinesAndSnapshotInOneTransaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewOfferRepository(db)

		offer := testStoredOffer()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE offers SET").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM offer_equipment_lines").
			WithArgs("offer-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO offer_equipment_lines").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.ReplaceEquipment(ctx, offer, 3))
		assert.Equal(t, int64(4), offer.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("VersionConflictRollsBackBeforeTouchingLines", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewOfferRepository(db)

		offer := testStoredOffer()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE offers SET").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = repo.ReplaceEquipment(ctx, offer, 3)
		assert.ErrorIs(t, err, domain.ErrConcurrentModification)
		assert.Equal(t, int64(3), offer.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func testStoredOffer() *domain.Offer {
	return &domain.Offer{
		ID:             "offer-1",
		WorkflowStatus: domain.StatusDraft,
		Equipment: []domain.EquipmentLine{
			{Title: "Printer", PurchasePrice: 100, Quantity: 1, MonthlyPayment: 50},
		},
		Version: 3,
	}
}

func TestOfferRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewOfferRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM offers WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewOfferRepository(db)

	offer := &domain.Offer{
		ClientID:       "client-1",
		ClientEmail:    "client@test.com",
		UserID:         "user-1",
		Type:           domain.OfferTypeAdmin,
		WorkflowStatus: domain.StatusDraft,
		Equipment: []domain.EquipmentLine{
			{Title: "Laptop", PurchasePrice: 300, Quantity: 1, MonthlyPayment: 100},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO offers").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO offer_equipment_lines").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.Create(context.Background(), offer)
	require.NoError(t, err)
	assert.NotEmpty(t, offer.ID)
	assert.Equal(t, int64(1), offer.Version)
	assert.NotEmpty(t, offer.Equipment[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferRepository_ListByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewOfferRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "type", "client_id", "client_email", "user_id", "ambassador_id", "leaser_id",
		"coefficient", "financed_amount", "monthly_payment", "margin", "commission", "commission_rate",
		"file_fee", "annual_insurance", "discount", "workflow_status", "status_before_info_request",
		"score", "score_reason", "version", "created_at", "updated_at",
	}).AddRow(
		"offer-1", "admin_offer", "client-1", "client@test.com", "user-1", nil, nil,
		3.27, 327, 100, 27, 16, 5.0,
		0, 126, nil, "sent", nil,
		nil, "", 2, now, now,
	)

	mock.ExpectQuery("SELECT (.+) FROM offers WHERE workflow_status").
		WithArgs(string(domain.StatusSent)).
		WillReturnRows(rows)

	offers, err := repo.ListByStatus(context.Background(), domain.StatusSent)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "offer-1", offers[0].ID)
	assert.Equal(t, int64(327), offers[0].FinancedAmount)
	assert.Nil(t, offers[0].Discount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
