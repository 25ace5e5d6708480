package reports

// VoucherSummary aggregates one voucher's total debit as its amount.
type VoucherSummary struct {
	ID            string `json:"id"`
	VoucherNumber int64  `json:"voucher_number"`
	Date          string `json:"date"`
	Description   string `json:"description"`
	TotalCents    int64  `json:"total_cents"`
}

// LedgerRow is one movement on an account with the running balance after
// it. Balance is signed debit minus credit, accumulated from zero; no
// opening balance is carried in.
type LedgerRow struct {
	Date          string `json:"date"`
	VoucherNumber int64  `json:"voucher_number"`
	Description   string `json:"description"`
	DebitCents    int64  `json:"debit_cents"`
	CreditCents   int64  `json:"credit_cents"`
	BalanceCents  int64  `json:"balance_cents"`
}
