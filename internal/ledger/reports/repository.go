package reports

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads committed ledger state for projections. Projections
// impose no invariants back onto the engine.
type Repository interface {
	VoucherSummaries(ctx context.Context, companyID string, fromDate, toDate *string) ([]VoucherSummary, error)
	AccountMovements(ctx context.Context, companyID, accountID string, fromDate, toDate *string) ([]LedgerRow, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) VoucherSummaries(ctx context.Context, companyID string, fromDate, toDate *string) ([]VoucherSummary, error) {
	query := `SELECT v.id, v.voucher_number, v.date, v.description, COALESCE(SUM(r.debit_cents),0)
FROM vouchers v
JOIN voucher_rows r ON r.voucher_id = v.id
WHERE v.company_id = $1`
	args := []any{companyID}
	if fromDate != nil {
		args = append(args, *fromDate)
		query += fmt.Sprintf(" AND v.date >= $%d", len(args))
	}
	if toDate != nil {
		args = append(args, *toDate)
		query += fmt.Sprintf(" AND v.date <= $%d", len(args))
	}
	query += ` GROUP BY v.id, v.voucher_number, v.date, v.description ORDER BY v.date ASC, v.voucher_number ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []VoucherSummary
	for rows.Next() {
		var item VoucherSummary
		if err := rows.Scan(&item.ID, &item.VoucherNumber, &item.Date, &item.Description, &item.TotalCents); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// AccountMovements returns raw movements in date/number order; the
// running balance is accumulated by the service.
func (r *repository) AccountMovements(ctx context.Context, companyID, accountID string, fromDate, toDate *string) ([]LedgerRow, error) {
	query := `SELECT v.date, v.voucher_number, v.description, r.debit_cents, r.credit_cents
FROM voucher_rows r
JOIN vouchers v ON v.id = r.voucher_id
WHERE v.company_id = $1 AND r.account_id = $2`
	args := []any{companyID, accountID}
	if fromDate != nil {
		args = append(args, *fromDate)
		query += fmt.Sprintf(" AND v.date >= $%d", len(args))
	}
	if toDate != nil {
		args = append(args, *toDate)
		query += fmt.Sprintf(" AND v.date <= $%d", len(args))
	}
	query += ` ORDER BY v.date ASC, v.voucher_number ASC, r.line_no ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LedgerRow
	for rows.Next() {
		var row LedgerRow
		if err := rows.Scan(&row.Date, &row.VoucherNumber, &row.Description, &row.DebitCents, &row.CreditCents); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
