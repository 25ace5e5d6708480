package companies

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kontobok/kontobok/internal/audit"
	"github.com/kontobok/kontobok/internal/ledger/series"
)

// Repository encapsulates DB operations for companies.
type Repository interface {
	List(ctx context.Context) ([]Company, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

type TxRepository interface {
	InsertCompany(ctx context.Context, company Company) error
	InsertSeries(ctx context.Context, s series.Series) error
	InsertAuditEntry(ctx context.Context, entry audit.Entry) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Company, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, org_number, fiscal_year_start, fiscal_year_end, created_at
FROM companies ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var companies []Company
	for rows.Next() {
		var company Company
		if err := rows.Scan(&company.ID, &company.Name, &company.OrgNumber, &company.FiscalYearStart, &company.FiscalYearEnd, &company.CreatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
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

func (r *txRepository) InsertCompany(ctx context.Context, company Company) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO companies (id, name, org_number, fiscal_year_start, fiscal_year_end, created_at)
VALUES ($1,$2,$3,$4,$5,$6)`,
		company.ID, company.Name, company.OrgNumber, company.FiscalYearStart, company.FiscalYearEnd, company.CreatedAt)
	return err
}

func (r *txRepository) InsertSeries(ctx context.Context, s series.Series) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO voucher_series (id, company_id, code, description, next_number)
VALUES ($1,$2,$3,$4,$5)`, s.ID, s.CompanyID, s.Code, s.Description, s.NextNumber)
	return err
}

func (r *txRepository) InsertAuditEntry(ctx context.Context, entry audit.Entry) error {
	return audit.Insert(ctx, r.tx, entry)
}
