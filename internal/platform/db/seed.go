package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedActor is the fixed identity recorded for bootstrap writes.
const SeedActor = "local"

type seedAccount struct {
	number int64
	name   string
	kind   string
}

// Standard BAS starter accounts for the demo company.
var seedAccounts = []seedAccount{
	{1930, "Bankkonto", "Asset"},
	{3010, "Försäljning", "Income"},
	{4010, "Varuinköp", "Expense"},
	{2641, "Ingående moms", "Asset"},
	{2611, "Utgående moms", "Liability"},
}

// SeedDemoCompany inserts the demo company, its default voucher series
// and a starter chart of accounts on first run. The seed is written in
// one transaction together with its audit entry and is a no-op once any
// company exists.
func SeedDemoCompany(ctx context.Context, pool *pgxpool.Pool, now time.Time) error {
	return WithTx(ctx, pool, func(tx pgx.Tx) error {
		var count int64
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&count); err != nil {
			return fmt.Errorf("platform/db: count companies: %w", err)
		}
		if count > 0 {
			return nil
		}

		ts := now.UTC().Format(time.RFC3339)
		year := now.UTC().Year()
		companyID := uuid.NewString()

		_, err := tx.Exec(ctx, `INSERT INTO companies (id, name, org_number, fiscal_year_start, fiscal_year_end, created_at)
VALUES ($1,$2,$3,$4,$5,$6)`,
			companyID, "Demo AB", nil,
			fmt.Sprintf("%d-01-01", year), fmt.Sprintf("%d-12-31", year), ts)
		if err != nil {
			return fmt.Errorf("platform/db: seed company: %w", err)
		}

		_, err = tx.Exec(ctx, `INSERT INTO voucher_series (id, company_id, code, description, next_number)
VALUES ($1,$2,$3,$4,$5)`, uuid.NewString(), companyID, "A", "Main series", 1)
		if err != nil {
			return fmt.Errorf("platform/db: seed series: %w", err)
		}

		for _, account := range seedAccounts {
			_, err = tx.Exec(ctx, `INSERT INTO accounts (id, company_id, number, name, type, vat_code, is_active, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
				uuid.NewString(), companyID, account.number, account.name, account.kind, nil, true, ts)
			if err != nil {
				return fmt.Errorf("platform/db: seed account %d: %w", account.number, err)
			}
		}

		_, err = tx.Exec(ctx, `INSERT INTO audit_log (id, company_id, entity_type, entity_id, action, payload_json, created_at, created_by)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			uuid.NewString(), companyID, "company", companyID, "seed", "{}", ts, SeedActor)
		if err != nil {
			return fmt.Errorf("platform/db: seed audit entry: %w", err)
		}
		return nil
	})
}
