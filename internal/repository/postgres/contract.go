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
)

type contractRepository struct {
	db *sql.DB
}

func NewContractRepository(db *sql.DB) repository.ContractRepository {
	return &contractRepository{db: db}
}

const contractColumns = `id, offer_id, client_id, leaser_id, monthly_payment, equipment_cost,
	contract_start_date, contract_duration, status, COALESCE(termination_reason, ''),
	version, created_at, updated_at`

func (r *contractRepository) Create(ctx context.Context, contract *domain.Contract) error {
	if contract.ID == "" {
		contract.ID = uuid.NewString()
	}
	contract.Version = 1
	now := time.Now()
	contract.CreatedAt = now
	contract.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO contracts (id, offer_id, client_id, leaser_id, monthly_payment, equipment_cost,
	            contract_start_date, contract_duration, status, termination_reason, version, created_at, updated_at)
	          VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`
	_, err = tx.ExecContext(ctx, query,
		contract.ID, contract.OfferID, contract.ClientID, contract.LeaserID,
		contract.MonthlyPayment, contract.EquipmentCost, contract.ContractStartDate,
		contract.ContractDuration, contract.Status, contract.TerminationReason,
		contract.Version, contract.CreatedAt, contract.UpdatedAt)
	if err != nil {
		return err
	}

	// Immutable equipment snapshot, copied once at creation.
	if err := insertEquipmentTx(ctx, tx, "contract_equipment_lines", "contract_id", contract.ID, contract.Equipment); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *contractRepository) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	return r.getOne(ctx, `SELECT `+contractColumns+` FROM contracts WHERE id = $1`, id)
}

func (r *contractRepository) GetByOfferID(ctx context.Context, offerID string) (*domain.Contract, error) {
	return r.getOne(ctx, `SELECT `+contractColumns+` FROM contracts WHERE offer_id = $1`, offerID)
}

func (r *contractRepository) getOne(ctx context.Context, query, arg string) (*domain.Contract, error) {
	contract := &domain.Contract{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&contract.ID, &contract.OfferID, &contract.ClientID, &contract.LeaserID,
		&contract.MonthlyPayment, &contract.EquipmentCost, &contract.ContractStartDate,
		&contract.ContractDuration, &contract.Status, &contract.TerminationReason,
		&contract.Version, &contract.CreatedAt, &contract.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: contract %s", domain.ErrNotFound, arg)
	}
	if err != nil {
		return nil, err
	}
	return contract, nil
}

func (r *contractRepository) UpdateStatus(ctx context.Context, contract *domain.Contract, expectedVersion int64) error {
	query := `UPDATE contracts SET status=$1, termination_reason=$2, contract_start_date=$3,
	            contract_duration=$4, version=version+1, updated_at=$5
	          WHERE id=$6 AND version=$7`
	res, err := r.db.ExecContext(ctx, query,
		contract.Status, contract.TerminationReason, contract.ContractStartDate,
		contract.ContractDuration, time.Now(), contract.ID, expectedVersion)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: contract %s at version %d", domain.ErrConcurrentModification, contract.ID, expectedVersion)
	}
	contract.Version = expectedVersion + 1
	return nil
}

func (r *contractRepository) ListByStatus(ctx context.Context, status domain.ContractStatus) ([]domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE status = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []domain.Contract
	for rows.Next() {
		var c domain.Contract
		if err := rows.Scan(&c.ID, &c.OfferID, &c.ClientID, &c.LeaserID,
			&c.MonthlyPayment, &c.EquipmentCost, &c.ContractStartDate,
			&c.ContractDuration, &c.Status, &c.TerminationReason,
			&c.Version, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}
