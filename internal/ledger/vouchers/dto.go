package vouchers

import (
	"errors"
	"fmt"
	"time"

	"github.com/kontobok/kontobok/internal/ledger/shared"
)

// RowInput describes one voucher row in a create request.
type RowInput struct {
	AccountID   string
	Description *string
	DebitCents  int64
	CreditCents int64
	VATCode     *string
}

// AttachmentInput describes an attachment in a create request. Inputs
// with a blank RefValue are silently dropped, mirroring empty form
// fields.
type AttachmentInput struct {
	RefType  string
	RefValue string
	Note     *string
}

// CreateInput groups fields required to create a voucher.
type CreateInput struct {
	CompanyID    string
	SeriesID     string
	Date         string
	Description  string
	Counterparty *string
	Rows         []RowInput
	Attachments  []AttachmentInput
	CreatedBy    string
}

// Validate runs the write-free checks, in the order the engine promises
// to report them: rows present first, then balance.
func (in CreateInput) Validate() error {
	if len(in.Rows) == 0 {
		return shared.ErrEmptyVoucher
	}
	var debit, credit int64
	for idx, row := range in.Rows {
		if row.AccountID == "" {
			return fmt.Errorf("ledger: row %d missing account", idx)
		}
		if row.DebitCents < 0 || row.CreditCents < 0 {
			return fmt.Errorf("ledger: row %d negative amount", idx)
		}
		debit += row.DebitCents
		credit += row.CreditCents
	}
	if debit != credit {
		return shared.ErrUnbalanced
	}
	if in.CompanyID == "" {
		return errors.New("ledger: company required")
	}
	if in.SeriesID == "" {
		return errors.New("ledger: series required")
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return fmt.Errorf("ledger: invalid date %q", in.Date)
	}
	if in.Description == "" {
		return errors.New("ledger: description required")
	}
	return nil
}

// CorrectionInput groups fields for a reversing voucher.
type CorrectionInput struct {
	OriginalVoucherID string
	Date              string
	Description       string
	CreatedBy         string
}
