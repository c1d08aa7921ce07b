package postgres

import (
	"context"
	"database/sql"
	"time"

	"leaseflow-backend/internal/domain"
	"leaseflow-backend/internal/repository"

	"github.com/google/uuid"
)

// workflowLogRepository is insert-only. No UPDATE or DELETE exists against
// workflow_log anywhere in this codebase.
type workflowLogRepository struct {
	db *sql.DB
}

func NewWorkflowLogRepository(db *sql.DB) repository.WorkflowLogRepository {
	return &workflowLogRepository{db: db}
}

func (r *workflowLogRepository) Append(ctx context.Context, entry *domain.WorkflowLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	query := `INSERT INTO workflow_log (id, entity_id, previous_status, new_status, actor_id, actor_name, reason, created_at)
	          VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.EntityID, entry.PreviousStatus, entry.NewStatus,
		entry.ActorID, entry.ActorName, entry.Reason, entry.CreatedAt)
	return err
}

func (r *workflowLogRepository) ListByEntity(ctx context.Context, entityID string) ([]domain.WorkflowLogEntry, error) {
	query := `SELECT id, entity_id, previous_status, new_status, actor_id, actor_name, COALESCE(reason, ''), created_at
	          FROM workflow_log WHERE entity_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.WorkflowLogEntry
	for rows.Next() {
		var e domain.WorkflowLogEntry
		if err := rows.Scan(&e.ID, &e.EntityID, &e.PreviousStatus, &e.NewStatus,
			&e.ActorID, &e.ActorName, &e.Reason, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
