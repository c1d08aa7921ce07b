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

func TestDocumentRequestRepository_ListOpenOlderThan(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewDocumentRequestRepository(db)

	created := time.Now().AddDate(0, 0, -10)
	rows := sqlmock.NewRows([]string{
		"id", "offer_id", "previous_status", "requested_kinds", "fulfilled_kinds",
		"custom_message", "status", "created_at", "completed_at",
	}).AddRow("req-1", "offer-1", "internal_review", "{kbis,bank_statement}", "{kbis}",
		"", "open", created, nil)

	mock.ExpectQuery("SELECT (.+) FROM offer_document_requests").
		WithArgs(string(domain.DocumentRequestOpen), sqlmock.AnyArg()).
		WillReturnRows(rows)

	reqs, err := repo.ListOpenOlderThan(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, []domain.DocumentKind{domain.DocKBIS, domain.DocBankStatement}, reqs[0].Requested)
	assert.Equal(t, []domain.DocumentKind{domain.DocKBIS}, reqs[0].Fulfilled)
	assert.Nil(t, reqs[0].CompletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRequestRepository_GetOpenByOffer_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewDocumentRequestRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM offer_document_requests").
		WithArgs("offer-1", string(domain.DocumentRequestOpen)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetOpenByOffer(context.Background(), "offer-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRequestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewDocumentRequestRepository(db)

	req := &domain.DocumentRequest{
		OfferID:        "offer-1",
		PreviousStatus: domain.StatusInternalReview,
		Requested:      []domain.DocumentKind{domain.DocKBIS},
		Status:         domain.DocumentRequestOpen,
	}

	mock.ExpectExec("INSERT INTO offer_document_requests").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), req))
	assert.NotEmpty(t, req.ID)
	assert.False(t, req.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
