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

type leaserRepository struct {
	db *sql.DB
}

func NewLeaserRepository(db *sql.DB) repository.LeaserRepository {
	return &leaserRepository{db: db}
}

func (r *leaserRepository) Create(ctx context.Context, leaser *domain.Leaser) error {
	if leaser.ID == "" {
		leaser.ID = uuid.NewString()
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if leaser.IsDefault {
		if _, err := tx.ExecContext(ctx, `UPDATE leasers SET is_default = false WHERE is_default = true`); err != nil {
			return err
		}
	}
	query := `INSERT INTO leasers (id, name, is_default) VALUES ($1, $2, $3)`
	if _, err := tx.ExecContext(ctx, query, leaser.ID, leaser.Name, leaser.IsDefault); err != nil {
		return err
	}
	if err := insertRangesTx(ctx, tx, leaser.ID, leaser.Ranges); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *leaserRepository) GetByID(ctx context.Context, id string) (*domain.Leaser, error) {
	return r.getOne(ctx, `SELECT id, name, is_default FROM leasers WHERE id = $1`, id)
}

func (r *leaserRepository) GetDefault(ctx context.Context) (*domain.Leaser, error) {
	return r.getOne(ctx, `SELECT id, name, is_default FROM leasers WHERE is_default = true`, nil)
}

func (r *leaserRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.Leaser, error) {
	leaser := &domain.Leaser{}
	var row *sql.Row
	if arg == nil {
		row = r.db.QueryRowContext(ctx, query)
	} else {
		row = r.db.QueryRowContext(ctx, query, arg)
	}
	err := row.Scan(&leaser.ID, &leaser.Name, &leaser.IsDefault)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: leaser", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if leaser.Ranges, err = r.loadRanges(ctx, leaser.ID); err != nil {
		return nil, err
	}
	return leaser, nil
}

func (r *leaserRepository) List(ctx context.Context) ([]domain.Leaser, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, is_default FROM leasers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leasers []domain.Leaser
	for rows.Next() {
		var l domain.Leaser
		if err := rows.Scan(&l.ID, &l.Name, &l.IsDefault); err != nil {
			return nil, err
		}
		leasers = append(leasers, l)
	}
	return leasers, rows.Err()
}

func (r *leaserRepository) Update(ctx context.Context, leaser *domain.Leaser) error {
	_, err := r.db.ExecContext(ctx, `UPDATE leasers SET name = $1 WHERE id = $2`, leaser.Name, leaser.ID)
	return err
}

// SetDefault swaps the default flag in one transaction so exactly one leaser
// holds it at any time.
func (r *leaserRepository) SetDefault(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE leasers SET is_default = false WHERE is_default = true`); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `UPDATE leasers SET is_default = true WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: leaser %s", domain.ErrNotFound, id)
	}
	return tx.Commit()
}

func (r *leaserRepository) ReplaceRanges(ctx context.Context, leaserID string, ranges []domain.Range) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM leaser_ranges WHERE leaser_id = $1`, leaserID); err != nil {
		return err
	}
	if err := insertRangesTx(ctx, tx, leaserID, ranges); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *leaserRepository) loadRanges(ctx context.Context, leaserID string) ([]domain.Range, error) {
	query := `SELECT id, leaser_id, min_amount, max_amount, coefficient FROM leaser_ranges WHERE leaser_id = $1 ORDER BY min_amount`
	rows, err := r.db.QueryContext(ctx, query, leaserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranges []domain.Range
	for rows.Next() {
		var rg domain.Range
		if err := rows.Scan(&rg.ID, &rg.LeaserID, &rg.Min, &rg.Max, &rg.Coefficient); err != nil {
			return nil, err
		}
		ranges = append(ranges, rg)
	}
	return ranges, rows.Err()
}

func insertRangesTx(ctx context.Context, tx *sql.Tx, leaserID string, ranges []domain.Range) error {
	query := `INSERT INTO leaser_ranges (id, leaser_id, min_amount, max_amount, coefficient) VALUES ($1,$2,$3,$4,$5)`
	for i := range ranges {
		if ranges[i].ID == "" {
			ranges[i].ID = uuid.NewString()
		}
		ranges[i].LeaserID = leaserID
		if _, err := tx.ExecContext(ctx, query,
			ranges[i].ID, leaserID, ranges[i].Min, ranges[i].Max, ranges[i].Coefficient); err != nil {
			return err
		}
	}
	return nil
}
