package accounts

import "fmt"

// AccountType enumerates CoA categories. The string encoding matches the
// persisted and exported representation.
type AccountType string

const (
	AccountTypeAsset     AccountType = "Asset"
	AccountTypeLiability AccountType = "Liability"
	AccountTypeIncome    AccountType = "Income"
	AccountTypeExpense   AccountType = "Expense"
	AccountTypeEquity    AccountType = "Equity"
)

// ParseAccountType validates the external string encoding at the
// boundary.
func ParseAccountType(value string) (AccountType, error) {
	switch AccountType(value) {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeIncome, AccountTypeExpense, AccountTypeEquity:
		return AccountType(value), nil
	}
	return "", fmt.Errorf("ledger: unknown account type %q", value)
}

// Account models a chart of accounts node. Accounts are never deleted,
// only deactivated, because historical voucher rows reference them.
type Account struct {
	ID        string      `json:"id"`
	CompanyID string      `json:"company_id"`
	Number    int64       `json:"number"`
	Name      string      `json:"name"`
	Type      AccountType `json:"type"`
	VATCode   *string     `json:"vat_code"`
	IsActive  bool        `json:"is_active"`
	CreatedAt string      `json:"created_at"`
}
