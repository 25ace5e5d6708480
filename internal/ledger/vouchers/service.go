package vouchers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kontobok/kontobok/internal/audit"
	"github.com/kontobok/kontobok/internal/ledger/shared"
)

// Invalidator bumps cached read projections after a committed write.
type Invalidator interface {
	Bump(ctx context.Context) error
}

// Recorder counts committed voucher mutations.
type Recorder interface {
	VoucherCreated()
	VoucherPosted()
}

// Service is the voucher engine: it validates and commits vouchers,
// finalizes drafts and produces correction vouchers. Every mutating
// operation runs as one atomic transaction; a failure at any step leaves
// the ledger exactly as before the call.
type Service struct {
	repo    Repository
	cache   Invalidator
	metrics Recorder
	now     func() time.Time
}

func NewService(repo Repository, cache Invalidator) *Service {
	return &Service{repo: repo, cache: cache, now: time.Now}
}

func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Service) WithMetrics(metrics Recorder) {
	s.metrics = metrics
}

// Get assembles a voucher with its rows and attachments.
func (s *Service) Get(ctx context.Context, voucherID string) (Voucher, error) {
	if voucherID == "" {
		return Voucher{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, voucherID)
}

// List returns vouchers for a company, newest first, optionally bounded
// by an inclusive date range.
func (s *Service) List(ctx context.Context, companyID string, fromDate, toDate *string) ([]Voucher, error) {
	return s.repo.List(ctx, companyID, fromDate, toDate)
}

// Create validates and commits a new draft voucher. The series number
// allocation, header, rows, attachments and audit entry all commit in
// the same transaction or not at all, so a voucher number is consumed
// iff the voucher exists.
func (s *Service) Create(ctx context.Context, in CreateInput) (Voucher, error) {
	if err := in.Validate(); err != nil {
		return Voucher{}, err
	}
	var created Voucher
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		locked, err := tx.IsPeriodLocked(ctx, in.CompanyID, in.Date)
		if err != nil {
			return err
		}
		if locked {
			return shared.ErrPeriodLocked
		}
		ser, err := tx.GetSeriesForUpdate(ctx, in.SeriesID)
		if err != nil {
			return err
		}
		if ser.CompanyID != in.CompanyID {
			return shared.ErrSeriesMismatch
		}
		number := ser.NextNumber
		if err := tx.IncrementSeriesNumber(ctx, ser.ID); err != nil {
			return err
		}

		now := s.now().UTC().Format(time.RFC3339)
		voucher := Voucher{
			ID:            uuid.NewString(),
			CompanyID:     in.CompanyID,
			SeriesID:      in.SeriesID,
			VoucherNumber: number,
			Date:          in.Date,
			Description:   in.Description,
			Counterparty:  in.Counterparty,
			CreatedAt:     now,
			CreatedBy:     in.CreatedBy,
			Rows:          make([]VoucherRow, 0, len(in.Rows)),
			Attachments:   []Attachment{},
		}
		if err := tx.InsertVoucher(ctx, voucher); err != nil {
			return err
		}
		for idx, input := range in.Rows {
			row := VoucherRow{
				ID:          uuid.NewString(),
				VoucherID:   voucher.ID,
				LineNo:      int64(idx + 1),
				AccountID:   input.AccountID,
				Description: input.Description,
				DebitCents:  input.DebitCents,
				CreditCents: input.CreditCents,
				VATCode:     input.VATCode,
			}
			if err := tx.InsertVoucherRow(ctx, row); err != nil {
				return err
			}
			voucher.Rows = append(voucher.Rows, row)
		}
		for _, input := range in.Attachments {
			if strings.TrimSpace(input.RefValue) == "" {
				continue
			}
			attachment := Attachment{
				ID:        uuid.NewString(),
				VoucherID: voucher.ID,
				RefType:   input.RefType,
				RefValue:  input.RefValue,
				Note:      input.Note,
				CreatedAt: now,
			}
			if err := tx.InsertAttachment(ctx, attachment); err != nil {
				return err
			}
			voucher.Attachments = append(voucher.Attachments, attachment)
		}
		if err := tx.InsertAuditEntry(ctx, audit.Entry{
			ID:         uuid.NewString(),
			CompanyID:  voucher.CompanyID,
			EntityType: "voucher",
			EntityID:   voucher.ID,
			Action:     "voucher.create",
			Payload:    map[string]any{"voucher_number": number},
			CreatedAt:  now,
			CreatedBy:  in.CreatedBy,
		}); err != nil {
			return err
		}
		created = voucher
		return nil
	})
	if err != nil {
		return Voucher{}, err
	}
	if s.metrics != nil {
		s.metrics.VoucherCreated()
	}
	s.bump(ctx)
	return created, nil
}

// Post finalizes a draft. The period lock is re-evaluated at post time:
// a lock created after the draft still blocks it. One-way transition;
// there is no unpost.
func (s *Service) Post(ctx context.Context, voucherID string) (Voucher, error) {
	if voucherID == "" {
		return Voucher{}, shared.ErrNotFound
	}
	var posted Voucher
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		voucher, err := tx.GetVoucher(ctx, voucherID)
		if err != nil {
			return err
		}
		if voucher.Posted() {
			return shared.ErrAlreadyPosted
		}
		locked, err := tx.IsPeriodLocked(ctx, voucher.CompanyID, voucher.Date)
		if err != nil {
			return err
		}
		if locked {
			return shared.ErrPeriodLocked
		}
		now := s.now().UTC().Format(time.RFC3339)
		if err := tx.SetVoucherPostedAt(ctx, voucher.ID, now); err != nil {
			return err
		}
		voucher.PostedAt = &now
		posted = voucher
		return nil
	})
	if err != nil {
		return Voucher{}, err
	}
	if s.metrics != nil {
		s.metrics.VoucherPosted()
	}
	s.bump(ctx)
	return posted, nil
}

// Correct creates a new voucher whose rows are the exact debit/credit
// swap of the original's. The original is never touched; the correction
// gets its own fresh number in the same series.
func (s *Service) Correct(ctx context.Context, in CorrectionInput) (Voucher, error) {
	if in.OriginalVoucherID == "" {
		return Voucher{}, errors.New("ledger: original voucher id required")
	}
	original, err := s.repo.Get(ctx, in.OriginalVoucherID)
	if err != nil {
		return Voucher{}, err
	}
	return s.Create(ctx, CreateInput{
		CompanyID:   original.CompanyID,
		SeriesID:    original.SeriesID,
		Date:        in.Date,
		Description: fmt.Sprintf("%s (Correction of %d)", in.Description, original.VoucherNumber),
		Rows:        reverseRows(original.Rows),
		CreatedBy:   in.CreatedBy,
	})
}

func (s *Service) bump(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Bump(ctx)
	}
}

func reverseRows(rows []VoucherRow) []RowInput {
	out := make([]RowInput, 0, len(rows))
	for _, row := range rows {
		out = append(out, RowInput{
			AccountID:   row.AccountID,
			Description: row.Description,
			DebitCents:  row.CreditCents,
			CreditCents: row.DebitCents,
			VATCode:     row.VATCode,
		})
	}
	return out
}
