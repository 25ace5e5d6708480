package series

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository lists voucher series. Number allocation is deliberately not
// exposed here: it happens inside the voucher transaction, see the
// vouchers TxRepository.
type Repository interface {
	ListByCompany(ctx context.Context, companyID string) ([]Series, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) ListByCompany(ctx context.Context, companyID string) ([]Series, error) {
	rows, err := r.db.Query(ctx, `SELECT id, company_id, code, description, next_number
FROM voucher_series WHERE company_id=$1 ORDER BY code ASC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Series
	for rows.Next() {
		var s Series
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Code, &s.Description, &s.NextNumber); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
