package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"leaseflow-backend/internal/domain"
	"leaseflow-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type documentRequestRepository struct {
	db *sql.DB
}

func NewDocumentRequestRepository(db *sql.DB) repository.DocumentRequestRepository {
	return &documentRequestRepository{db: db}
}

func (r *documentRequestRepository) Create(ctx context.Context, req *domain.DocumentRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	query := `INSERT INTO offer_document_requests
	            (id, offer_id, previous_status, requested_kinds, fulfilled_kinds, custom_message, status, created_at)
	          VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.OfferID, req.PreviousStatus,
		pq.Array(kindsToStrings(req.Requested)), pq.Array(kindsToStrings(req.Fulfilled)),
		req.CustomMessage, req.Status, req.CreatedAt)
	return err
}

func (r *documentRequestRepository) GetOpenByOffer(ctx context.Context, offerID string) (*domain.DocumentRequest, error) {
	query := `SELECT id, offer_id, previous_status, requested_kinds, fulfilled_kinds,
	            COALESCE(custom_message, ''), status, created_at, completed_at
	          FROM offer_document_requests WHERE offer_id = $1 AND status = $2
	          ORDER BY created_at DESC LIMIT 1`
	req, err := r.scanOne(r.db.QueryRowContext(ctx, query, offerID, domain.DocumentRequestOpen))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no open document request for offer %s", domain.ErrNotFound, offerID)
	}
	return req, err
}

func (r *documentRequestRepository) Update(ctx context.Context, req *domain.DocumentRequest) error {
	query := `UPDATE offer_document_requests
	          SET fulfilled_kinds=$1, status=$2, completed_at=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query,
		pq.Array(kindsToStrings(req.Fulfilled)), req.Status, req.CompletedAt, req.ID)
	return err
}

func (r *documentRequestRepository) AddDocument(ctx context.Context, doc *domain.UploadedDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	query := `INSERT INTO uploaded_documents (id, request_id, offer_id, kind, file_name, storage_key, file_size, mime_type, created_at)
	          VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.RequestID, doc.OfferID, doc.Kind, doc.FileName,
		doc.StorageKey, doc.FileSize, doc.MimeType, doc.CreatedAt)
	return err
}

func (r *documentRequestRepository) ListOpenOlderThan(ctx context.Context, days int) ([]domain.DocumentRequest, error) {
	query := `SELECT id, offer_id, previous_status, requested_kinds, fulfilled_kinds,
	            COALESCE(custom_message, ''), status, created_at, completed_at
	          FROM offer_document_requests
	          WHERE status = $1 AND created_at < $2 ORDER BY created_at`
	cutoff := time.Now().AddDate(0, 0, -days)
	rows, err := r.db.QueryContext(ctx, query, domain.DocumentRequestOpen, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.DocumentRequest
	for rows.Next() {
		req, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *documentRequestRepository) scanOne(row rowScanner) (*domain.DocumentRequest, error) {
	req := &domain.DocumentRequest{}
	var requested, fulfilled []string
	err := row.Scan(&req.ID, &req.OfferID, &req.PreviousStatus,
		pq.Array(&requested), pq.Array(&fulfilled),
		&req.CustomMessage, &req.Status, &req.CreatedAt, &req.CompletedAt)
	if err != nil {
		return nil, err
	}
	req.Requested = stringsToKinds(requested)
	req.Fulfilled = stringsToKinds(fulfilled)
	return req, nil
}

func kindsToStrings(kinds []domain.DocumentKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

func stringsToKinds(values []string) []domain.DocumentKind {
	if len(values) == 0 {
		return nil
	}
	out := make([]domain.DocumentKind, len(values))
	for i, v := range values {
		out[i] = domain.DocumentKind(v)
	}
	return out
}
