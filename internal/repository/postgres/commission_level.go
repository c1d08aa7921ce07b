package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"leaseflow-backend/internal/domain"
	"leaseflow-backend/internal/repository"

	"github.com/google/uuid"
)

type commissionLevelRepository struct {
	db *sql.DB
}

func NewCommissionLevelRepository(db *sql.DB) repository.CommissionLevelRepository {
	return &commissionLevelRepository{db: db}
}

func (r *commissionLevelRepository) Create(ctx context.Context, level *domain.CommissionLevel) error {
	if level.ID == "" {
		level.ID = uuid.NewString()
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT INTO commission_levels (id, name) VALUES ($1, $2)`, level.ID, level.Name); err != nil {
		return err
	}
	if err := insertRatesTx(ctx, tx, level.ID, level.Rates); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *commissionLevelRepository) GetByID(ctx context.Context, id string) (*domain.CommissionLevel, error) {
	level := &domain.CommissionLevel{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM commission_levels WHERE id = $1`, id).
		Scan(&level.ID, &level.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: commission level %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if level.Rates, err = r.loadRates(ctx, level.ID); err != nil {
		return nil, err
	}
	return level, nil
}

func (r *commissionLevelRepository) List(ctx context.Context) ([]domain.CommissionLevel, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM commission_levels ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []domain.CommissionLevel
	for rows.Next() {
		var l domain.CommissionLevel
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}

func (r *commissionLevelRepository) ReplaceRates(ctx context.Context, levelID string, rates []domain.CommissionRate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM commission_rates WHERE level_id = $1`, levelID); err != nil {
		return err
	}
	if err := insertRatesTx(ctx, tx, levelID, rates); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *commissionLevelRepository) loadRates(ctx context.Context, levelID string) ([]domain.CommissionRate, error) {
	query := `SELECT id, level_id, min_amount, max_amount, rate FROM commission_rates WHERE level_id = $1 ORDER BY min_amount`
	rows, err := r.db.QueryContext(ctx, query, levelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []domain.CommissionRate
	for rows.Next() {
		var rate domain.CommissionRate
		if err := rows.Scan(&rate.ID, &rate.LevelID, &rate.MinAmount, &rate.MaxAmount, &rate.Rate); err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	return rates, rows.Err()
}

func insertRatesTx(ctx context.Context, tx *sql.Tx, levelID string, rates []domain.CommissionRate) error {
	query := `INSERT INTO commission_rates (id, level_id, min_amount, max_amount, rate) VALUES ($1,$2,$3,$4,$5)`
	for i := range rates {
		if rates[i].ID == "" {
			rates[i].ID = uuid.NewString()
		}
		rates[i].LevelID = levelID
		if _, err := tx.ExecContext(ctx, query,
			rates[i].ID, levelID, rates[i].MinAmount, rates[i].MaxAmount, rates[i].Rate); err != nil {
			return err
		}
	}
	return nil
}
