package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"leaseflow-backend/internal/domain"
	"leaseflow-backend/internal/repository"

	"github.com/google/uuid"
)

type offerRepository struct {
	db *sql.DB
}

func NewOfferRepository(db *sql.DB) repository.OfferRepository {
	return &offerRepository{db: db}
}

const offerColumns = `id, type, client_id, client_email, user_id, ambassador_id, leaser_id,
	coefficient, financed_amount, monthly_payment, margin, commission, commission_rate,
	file_fee, annual_insurance, discount, workflow_status, status_before_info_request,
	score, COALESCE(score_reason, ''), version, created_at, updated_at`

func (r *offerRepository) Create(ctx context.Context, offer *domain.Offer) error {
	if offer.ID == "" {
		offer.ID = uuid.NewString()
	}
	offer.Version = 1
	now := time.Now()
	offer.CreatedAt = now
	offer.UpdatedAt = now

	discount, err := marshalDiscount(offer.Discount)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO offers (id, type, client_id, client_email, user_id, ambassador_id, leaser_id,
	            coefficient, financed_amount, monthly_payment, margin, commission, commission_rate,
	            file_fee, annual_insurance, discount, workflow_status, status_before_info_request,
	            score, score_reason, version, created_at, updated_at)
	          VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)`
	_, err = tx.ExecContext(ctx, query,
		offer.ID, offer.Type, offer.ClientID, offer.ClientEmail, offer.UserID, offer.AmbassadorID, offer.LeaserID,
		offer.Coefficient, offer.FinancedAmount, offer.MonthlyPayment, offer.Margin,
		offer.Commission, offer.CommissionRate, offer.FileFee, offer.AnnualInsurance,
		discount, offer.WorkflowStatus, offer.StatusBeforeInfoRequest,
		offer.Score, offer.ScoreReason, offer.Version, offer.CreatedAt, offer.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertEquipmentTx(ctx, tx, "offer_equipment_lines", "offer_id", offer.ID, offer.Equipment); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *offerRepository) GetByID(ctx context.Context, id string) (*domain.Offer, error) {
	offer := &domain.Offer{}
	var discount []byte
	query := `SELECT ` + offerColumns + ` FROM offers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&offer.ID, &offer.Type, &offer.ClientID, &offer.ClientEmail, &offer.UserID, &offer.AmbassadorID, &offer.LeaserID,
		&offer.Coefficient, &offer.FinancedAmount, &offer.MonthlyPayment, &offer.Margin,
		&offer.Commission, &offer.CommissionRate, &offer.FileFee, &offer.AnnualInsurance,
		&discount, &offer.WorkflowStatus, &offer.StatusBeforeInfoRequest,
		&offer.Score, &offer.ScoreReason, &offer.Version, &offer.CreatedAt, &offer.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: offer %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if offer.Discount, err = unmarshalDiscount(discount); err != nil {
		return nil, err
	}
	if offer.Equipment, err = r.loadEquipment(ctx, offer.ID); err != nil {
		return nil, err
	}
	return offer, nil
}

const offerSnapshotUpdate = `UPDATE offers SET
	            coefficient=$1, financed_amount=$2, monthly_payment=$3, margin=$4,
	            commission=$5, commission_rate=$6, file_fee=$7, annual_insurance=$8, discount=$9,
	            workflow_status=$10, status_before_info_request=$11, score=$12, score_reason=$13,
	            leaser_id=$14, version=version+1, updated_at=$15
	          WHERE id=$16 AND version=$17`

func snapshotArgs(offer *domain.Offer, discount []byte, expectedVersion int64) []interface{} {
	return []interface{}{
		offer.Coefficient, offer.FinancedAmount, offer.MonthlyPayment, offer.Margin,
		offer.Commission, offer.CommissionRate, offer.FileFee, offer.AnnualInsurance, discount,
		offer.WorkflowStatus, offer.StatusBeforeInfoRequest, offer.Score, offer.ScoreReason,
		offer.LeaserID, time.Now(), offer.ID, expectedVersion,
	}
}

// UpdateSnapshot writes the status, score and full financial snapshot in one
// statement guarded by the version column.
func (r *offerRepository) UpdateSnapshot(ctx context.Context, offer *domain.Offer, expectedVersion int64) error {
	discount, err := marshalDiscount(offer.Discount)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, offerSnapshotUpdate, snapshotArgs(offer, discount, expectedVersion)...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: offer %s at version %d", domain.ErrConcurrentModification, offer.ID, expectedVersion)
	}
	offer.Version = expectedVersion + 1
	return nil
}

// ReplaceEquipment runs the version-guarded snapshot write and the line swap
// in one transaction. The version check comes first: when the row moved the
// lines stay untouched.
func (r *offerRepository) ReplaceEquipment(ctx context.Context, offer *domain.Offer, expectedVersion int64) error {
	discount, err := marshalDiscount(offer.Discount)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, offerSnapshotUpdate, snapshotArgs(offer, discount, expectedVersion)...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: offer %s at version %d", domain.ErrConcurrentModification, offer.ID, expectedVersion)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM offer_equipment_lines WHERE offer_id = $1`, offer.ID); err != nil {
		return err
	}
	if err := insertEquipmentTx(ctx, tx, "offer_equipment_lines", "offer_id", offer.ID, offer.Equipment); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	offer.Version = expectedVersion + 1
	return nil
}

func (r *offerRepository) ListByUser(ctx context.Context, userID string, status string, page, pageSize int32) ([]domain.Offer, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + offerColumns + ` FROM offers WHERE user_id = $1`
	args := []interface{}{userID}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND workflow_status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	offers, err := r.queryOffers(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return offers, count, nil
}

func (r *offerRepository) ListByStatus(ctx context.Context, status domain.WorkflowStatus) ([]domain.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE workflow_status = $1 ORDER BY created_at`
	return r.queryOffers(ctx, query, status)
}

func (r *offerRepository) queryOffers(ctx context.Context, query string, args ...interface{}) ([]domain.Offer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []domain.Offer
	for rows.Next() {
		var offer domain.Offer
		var discount []byte
		if err := rows.Scan(
			&offer.ID, &offer.Type, &offer.ClientID, &offer.ClientEmail, &offer.UserID, &offer.AmbassadorID, &offer.LeaserID,
			&offer.Coefficient, &offer.FinancedAmount, &offer.MonthlyPayment, &offer.Margin,
			&offer.Commission, &offer.CommissionRate, &offer.FileFee, &offer.AnnualInsurance,
			&discount, &offer.WorkflowStatus, &offer.StatusBeforeInfoRequest,
			&offer.Score, &offer.ScoreReason, &offer.Version, &offer.CreatedAt, &offer.UpdatedAt); err != nil {
			return nil, err
		}
		if offer.Discount, err = unmarshalDiscount(discount); err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}
	return offers, rows.Err()
}

func (r *offerRepository) loadEquipment(ctx context.Context, offerID string) ([]domain.EquipmentLine, error) {
	query := `SELECT id, offer_id, title, purchase_price, quantity, margin_percent, monthly_payment, position
	          FROM offer_equipment_lines WHERE offer_id = $1 ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, offerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.EquipmentLine
	for rows.Next() {
		var line domain.EquipmentLine
		if err := rows.Scan(&line.ID, &line.OfferID, &line.Title, &line.PurchasePrice,
			&line.Quantity, &line.MarginPercent, &line.MonthlyPayment, &line.Position); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func insertEquipmentTx(ctx context.Context, tx *sql.Tx, table, fkColumn, parentID string, lines []domain.EquipmentLine) error {
	query := fmt.Sprintf(`INSERT INTO %s (id, %s, title, purchase_price, quantity, margin_percent, monthly_payment, position)
	          VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`, table, fkColumn)
	for i := range lines {
		if lines[i].ID == "" {
			lines[i].ID = uuid.NewString()
		}
		lines[i].OfferID = parentID
		lines[i].Position = int32(i)
		if _, err := tx.ExecContext(ctx, query,
			lines[i].ID, parentID, lines[i].Title, lines[i].PurchasePrice,
			lines[i].Quantity, lines[i].MarginPercent, lines[i].MonthlyPayment, lines[i].Position); err != nil {
			return err
		}
	}
	return nil
}

func marshalDiscount(d *domain.Discount) ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

func unmarshalDiscount(data []byte) (*domain.Discount, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var d domain.Discount
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
