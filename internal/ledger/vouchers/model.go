package vouchers

// Voucher is one dated financial transaction composed of balanced
// debit/credit rows. A nil PostedAt means draft; once set the voucher is
// logically immutable and no update path exists for header or rows.
type Voucher struct {
	ID            string       `json:"id"`
	CompanyID     string       `json:"company_id"`
	SeriesID      string       `json:"series_id"`
	VoucherNumber int64        `json:"voucher_number"`
	Date          string       `json:"date"`
	Description   string       `json:"description"`
	Counterparty  *string      `json:"counterparty"`
	CreatedAt     string       `json:"created_at"`
	CreatedBy     string       `json:"created_by"`
	PostedAt      *string      `json:"posted_at"`
	Rows          []VoucherRow `json:"rows"`
	Attachments   []Attachment `json:"attachments"`
}

// Posted reports whether the voucher has been finalized.
func (v Voucher) Posted() bool {
	return v.PostedAt != nil && *v.PostedAt != ""
}

// VoucherRow carries one debit or credit against an account. Amounts are
// non-negative integer cents; balance is enforced at the voucher level.
type VoucherRow struct {
	ID          string  `json:"id"`
	VoucherID   string  `json:"voucher_id"`
	LineNo      int64   `json:"line_no"`
	AccountID   string  `json:"account_id"`
	Description *string `json:"description"`
	DebitCents  int64   `json:"debit_cents"`
	CreditCents int64   `json:"credit_cents"`
	VATCode     *string `json:"vat_code"`
}

// Attachment points at supporting material for a voucher, e.g. a
// receipt reference.
type Attachment struct {
	ID        string  `json:"id"`
	VoucherID string  `json:"voucher_id"`
	RefType   string  `json:"ref_type"`
	RefValue  string  `json:"ref_value"`
	Note      *string `json:"note"`
	CreatedAt string  `json:"created_at"`
}
