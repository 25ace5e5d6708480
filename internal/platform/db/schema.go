package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Dates and timestamps are stored as ISO-8601 text so range checks reduce
// to lexicographic comparison; money is integer cents throughout.
const schema = `
CREATE TABLE IF NOT EXISTS companies (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  org_number TEXT,
  fiscal_year_start TEXT NOT NULL,
  fiscal_year_end TEXT NOT NULL,
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS accounts (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL REFERENCES companies(id),
  number BIGINT NOT NULL,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  vat_code TEXT,
  is_active BOOLEAN NOT NULL,
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS voucher_series (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL REFERENCES companies(id),
  code TEXT NOT NULL,
  description TEXT NOT NULL,
  next_number BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS vouchers (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL REFERENCES companies(id),
  series_id TEXT NOT NULL REFERENCES voucher_series(id),
  voucher_number BIGINT NOT NULL,
  date TEXT NOT NULL,
  description TEXT NOT NULL,
  counterparty TEXT,
  created_at TEXT NOT NULL,
  created_by TEXT NOT NULL,
  posted_at TEXT,
  corrected_voucher_id TEXT,
  CONSTRAINT uq_vouchers_series_number UNIQUE (company_id, series_id, voucher_number)
);

CREATE TABLE IF NOT EXISTS voucher_rows (
  id TEXT PRIMARY KEY,
  voucher_id TEXT NOT NULL REFERENCES vouchers(id),
  line_no BIGINT NOT NULL,
  account_id TEXT NOT NULL,
  description TEXT,
  debit_cents BIGINT NOT NULL,
  credit_cents BIGINT NOT NULL,
  vat_code TEXT
);

CREATE TABLE IF NOT EXISTS attachments (
  id TEXT PRIMARY KEY,
  voucher_id TEXT NOT NULL REFERENCES vouchers(id),
  ref_type TEXT NOT NULL,
  ref_value TEXT NOT NULL,
  note TEXT,
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS period_locks (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL REFERENCES companies(id),
  period_start TEXT NOT NULL,
  period_end TEXT NOT NULL,
  locked_at TEXT NOT NULL,
  locked_by TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS audit_log (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL REFERENCES companies(id),
  entity_type TEXT NOT NULL,
  entity_id TEXT NOT NULL,
  action TEXT NOT NULL,
  payload_json TEXT NOT NULL,
  created_at TEXT NOT NULL,
  created_by TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vouchers_company_date ON vouchers (company_id, date);
CREATE INDEX IF NOT EXISTS idx_voucher_rows_voucher ON voucher_rows (voucher_id);
CREATE INDEX IF NOT EXISTS idx_period_locks_company ON period_locks (company_id);
CREATE INDEX IF NOT EXISTS idx_audit_log_company ON audit_log (company_id, created_at);
`

// EnsureSchema creates the ledger tables when missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("platform/db: ensure schema: %w", err)
	}
	return nil
}
