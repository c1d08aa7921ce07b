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

func TestWorkflowLogRepository_Append(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewWorkflowLogRepository(db)

	entry := &domain.WorkflowLogEntry{
		EntityID:       "offer-1",
		PreviousStatus: string(domain.StatusDraft),
		NewStatus:      string(domain.StatusSent),
		ActorID:        "user-1",
		ActorName:      "Alice",
		Reason:         "",
	}

	mock.ExpectExec("INSERT INTO workflow_log").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Append(context.Background(), entry))
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkflowLogRepository_ListByEntity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewWorkflowLogRepository(db)

	first := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	rows := sqlmock.NewRows([]string{
		"id", "entity_id", "previous_status", "new_status", "actor_id", "actor_name", "reason", "created_at",
	}).
		AddRow("log-1", "offer-1", "draft", "sent", "user-1", "Alice", "", first).
		AddRow("log-2", "offer-1", "sent", "internal_review", "user-1", "Alice", "", second)

	mock.ExpectQuery("SELECT (.+) FROM workflow_log WHERE entity_id").
		WithArgs("offer-1").
		WillReturnRows(rows)

	entries, err := repo.ListByEntity(context.Background(), "offer-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "sent", entries[0].NewStatus)
	assert.Equal(t, "internal_review", entries[1].NewStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}
