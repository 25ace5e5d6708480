package periods

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kontobok/kontobok/internal/audit"
)

// Repository encapsulates DB operations for period locks.
type Repository interface {
	ListByCompany(ctx context.Context, companyID string) ([]PeriodLock, error)
	IsLocked(ctx context.Context, companyID, date string) (bool, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the statements a lock transaction needs.
type TxRepository interface {
	InsertPeriodLock(ctx context.Context, lock PeriodLock) error
	InsertAuditEntry(ctx context.Context, entry audit.Entry) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) ListByCompany(ctx context.Context, companyID string) ([]PeriodLock, error) {
	rows, err := r.db.Query(ctx, `SELECT id, company_id, period_start, period_end, locked_at, locked_by
FROM period_locks WHERE company_id=$1 ORDER BY period_start DESC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var locks []PeriodLock
	for rows.Next() {
		var lock PeriodLock
		if err := rows.Scan(&lock.ID, &lock.CompanyID, &lock.PeriodStart, &lock.PeriodEnd, &lock.LockedAt, &lock.LockedBy); err != nil {
			return nil, err
		}
		locks = append(locks, lock)
	}
	return locks, rows.Err()
}

func (r *repository) IsLocked(ctx context.Context, companyID, date string) (bool, error) {
	var locked bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (
SELECT 1 FROM period_locks WHERE company_id=$1 AND $2 BETWEEN period_start AND period_end)`, companyID, date).Scan(&locked)
	return locked, err
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return err
	}
	if err := fn(ctx, &txRepository{tx: tx}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) InsertPeriodLock(ctx context.Context, lock PeriodLock) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO period_locks (id, company_id, period_start, period_end, locked_at, locked_by)
VALUES ($1,$2,$3,$4,$5,$6)`, lock.ID, lock.CompanyID, lock.PeriodStart, lock.PeriodEnd, lock.LockedAt, lock.LockedBy)
	return err
}

func (r *txRepository) InsertAuditEntry(ctx context.Context, entry audit.Entry) error {
	return audit.Insert(ctx, r.tx, entry)
}
