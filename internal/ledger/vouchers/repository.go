package vouchers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kontobok/kontobok/internal/audit"
	"github.com/kontobok/kontobok/internal/ledger/series"
	"github.com/kontobok/kontobok/internal/ledger/shared"
)

// Repository encapsulates DB operations for vouchers.
type Repository interface {
	Get(ctx context.Context, voucherID string) (Voucher, error)
	List(ctx context.Context, companyID string, fromDate, toDate *string) ([]Voucher, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the statements available inside a voucher
// transaction. Series and period-lock reads are duplicated here rather
// than borrowed from their home packages so they run on the same
// transaction as the dependent writes.
type TxRepository interface {
	IsPeriodLocked(ctx context.Context, companyID, date string) (bool, error)
	GetSeriesForUpdate(ctx context.Context, seriesID string) (series.Series, error)
	IncrementSeriesNumber(ctx context.Context, seriesID string) error
	InsertVoucher(ctx context.Context, voucher Voucher) error
	InsertVoucherRow(ctx context.Context, row VoucherRow) error
	InsertAttachment(ctx context.Context, attachment Attachment) error
	InsertAuditEntry(ctx context.Context, entry audit.Entry) error
	GetVoucher(ctx context.Context, voucherID string) (Voucher, error)
	SetVoucherPostedAt(ctx context.Context, voucherID, postedAt string) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const voucherColumns = `id, company_id, series_id, voucher_number, date, description, counterparty, created_at, created_by, posted_at`

func (r *repository) Get(ctx context.Context, voucherID string) (Voucher, error) {
	return getVoucher(ctx, r.db, voucherID)
}

func (r *repository) List(ctx context.Context, companyID string, fromDate, toDate *string) ([]Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE company_id=$1`
	args := []any{companyID}
	if fromDate != nil {
		args = append(args, *fromDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if toDate != nil {
		args = append(args, *toDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += ` ORDER BY date DESC, voucher_number DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var vouchers []Voucher
	for rows.Next() {
		voucher, err := scanVoucher(rows)
		if err != nil {
			return nil, err
		}
		vouchers = append(vouchers, voucher)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range vouchers {
		if vouchers[i].Rows, err = fetchRows(ctx, r.db, vouchers[i].ID); err != nil {
			return nil, err
		}
		if vouchers[i].Attachments, err = fetchAttachments(ctx, r.db, vouchers[i].ID); err != nil {
			return nil, err
		}
	}
	return vouchers, nil
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

func (r *txRepository) IsPeriodLocked(ctx context.Context, companyID, date string) (bool, error) {
	var locked bool
	err := r.tx.QueryRow(ctx, `SELECT EXISTS (
SELECT 1 FROM period_locks WHERE company_id=$1 AND $2 BETWEEN period_start AND period_end)`, companyID, date).Scan(&locked)
	return locked, err
}

// GetSeriesForUpdate locks the series row for the remainder of the
// transaction. Concurrent allocations against the same series serialize
// on this lock, which is what keeps voucher numbers gapless and unique.
func (r *txRepository) GetSeriesForUpdate(ctx context.Context, seriesID string) (series.Series, error) {
	var s series.Series
	err := r.tx.QueryRow(ctx, `SELECT id, company_id, code, description, next_number
FROM voucher_series WHERE id=$1 FOR UPDATE`, seriesID).
		Scan(&s.ID, &s.CompanyID, &s.Code, &s.Description, &s.NextNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return series.Series{}, shared.ErrNotFound
		}
		return series.Series{}, err
	}
	return s, nil
}

func (r *txRepository) IncrementSeriesNumber(ctx context.Context, seriesID string) error {
	cmd, err := r.tx.Exec(ctx, `UPDATE voucher_series SET next_number = next_number + 1 WHERE id=$1`, seriesID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *txRepository) InsertVoucher(ctx context.Context, voucher Voucher) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO vouchers (id, company_id, series_id, voucher_number, date, description, counterparty, created_at, created_by, posted_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NULL)`,
		voucher.ID, voucher.CompanyID, voucher.SeriesID, voucher.VoucherNumber, voucher.Date,
		voucher.Description, voucher.Counterparty, voucher.CreatedAt, voucher.CreatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "uq_vouchers_series_number" {
			return fmt.Errorf("ledger: duplicate voucher number: %w", err)
		}
		return err
	}
	return nil
}

func (r *txRepository) InsertVoucherRow(ctx context.Context, row VoucherRow) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO voucher_rows (id, voucher_id, line_no, account_id, description, debit_cents, credit_cents, vat_code)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		row.ID, row.VoucherID, row.LineNo, row.AccountID, row.Description, row.DebitCents, row.CreditCents, row.VATCode)
	return err
}

func (r *txRepository) InsertAttachment(ctx context.Context, attachment Attachment) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO attachments (id, voucher_id, ref_type, ref_value, note, created_at)
VALUES ($1,$2,$3,$4,$5,$6)`,
		attachment.ID, attachment.VoucherID, attachment.RefType, attachment.RefValue, attachment.Note, attachment.CreatedAt)
	return err
}

func (r *txRepository) InsertAuditEntry(ctx context.Context, entry audit.Entry) error {
	return audit.Insert(ctx, r.tx, entry)
}

func (r *txRepository) GetVoucher(ctx context.Context, voucherID string) (Voucher, error) {
	return getVoucher(ctx, r.tx, voucherID)
}

func (r *txRepository) SetVoucherPostedAt(ctx context.Context, voucherID, postedAt string) error {
	cmd, err := r.tx.Exec(ctx, `UPDATE vouchers SET posted_at=$2 WHERE id=$1`, voucherID, postedAt)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// querier covers both pool and transaction reads.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getVoucher(ctx context.Context, q querier, voucherID string) (Voucher, error) {
	row := q.QueryRow(ctx, `SELECT `+voucherColumns+` FROM vouchers WHERE id=$1`, voucherID)
	voucher, err := scanVoucher(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Voucher{}, shared.ErrNotFound
		}
		return Voucher{}, err
	}
	if voucher.Rows, err = fetchRows(ctx, q, voucher.ID); err != nil {
		return Voucher{}, err
	}
	if voucher.Attachments, err = fetchAttachments(ctx, q, voucher.ID); err != nil {
		return Voucher{}, err
	}
	return voucher, nil
}

func scanVoucher(row pgx.Row) (Voucher, error) {
	var v Voucher
	err := row.Scan(&v.ID, &v.CompanyID, &v.SeriesID, &v.VoucherNumber, &v.Date, &v.Description,
		&v.Counterparty, &v.CreatedAt, &v.CreatedBy, &v.PostedAt)
	return v, err
}

func fetchRows(ctx context.Context, q querier, voucherID string) ([]VoucherRow, error) {
	rows, err := q.Query(ctx, `SELECT id, voucher_id, line_no, account_id, description, debit_cents, credit_cents, vat_code
FROM voucher_rows WHERE voucher_id=$1 ORDER BY line_no ASC`, voucherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []VoucherRow{}
	for rows.Next() {
		var r VoucherRow
		if err := rows.Scan(&r.ID, &r.VoucherID, &r.LineNo, &r.AccountID, &r.Description, &r.DebitCents, &r.CreditCents, &r.VATCode); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func fetchAttachments(ctx context.Context, q querier, voucherID string) ([]Attachment, error) {
	rows, err := q.Query(ctx, `SELECT id, voucher_id, ref_type, ref_value, note, created_at
FROM attachments WHERE voucher_id=$1 ORDER BY id ASC`, voucherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Attachment{}
	for rows.Next() {
		var a Attachment
		if err := rows.Scan(&a.ID, &a.VoucherID, &a.RefType, &a.RefValue, &a.Note, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
