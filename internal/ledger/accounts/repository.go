package accounts

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kontobok/kontobok/internal/audit"
)

// Repository encapsulates DB operations for the chart of accounts.
type Repository interface {
	ListByCompany(ctx context.Context, companyID string) ([]Account, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

type TxRepository interface {
	UpsertAccount(ctx context.Context, account Account) error
	InsertAuditEntry(ctx context.Context, entry audit.Entry) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) ListByCompany(ctx context.Context, companyID string) ([]Account, error) {
	rows, err := r.db.Query(ctx, `SELECT id, company_id, number, name, type, vat_code, is_active, created_at
FROM accounts WHERE company_id=$1 ORDER BY number ASC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var accounts []Account
	for rows.Next() {
		var account Account
		if err := rows.Scan(&account.ID, &account.CompanyID, &account.Number, &account.Name, &account.Type, &account.VATCode, &account.IsActive, &account.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
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

// UpsertAccount is insert-or-replace keyed on id; created_at survives
// replacement.
func (r *txRepository) UpsertAccount(ctx context.Context, account Account) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO accounts (id, company_id, number, name, type, vat_code, is_active, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (id) DO UPDATE SET
  number = EXCLUDED.number,
  name = EXCLUDED.name,
  type = EXCLUDED.type,
  vat_code = EXCLUDED.vat_code,
  is_active = EXCLUDED.is_active`,
		account.ID, account.CompanyID, account.Number, account.Name, string(account.Type), account.VATCode, account.IsActive, account.CreatedAt)
	return err
}

func (r *txRepository) InsertAuditEntry(ctx context.Context, entry audit.Entry) error {
	return audit.Insert(ctx, r.tx, entry)
}
