package accounts

import "errors"

// UpsertInput groups fields for insert-or-replace of an account, keyed
// on ID. A missing ID means a new account. Number uniqueness within the
// company is intentionally not enforced.
type UpsertInput struct {
	ID        *string
	CompanyID string
	Number    int64
	Name      string
	Type      string
	VATCode   *string
	IsActive  bool
	Actor     string
}

func (in UpsertInput) Validate() error {
	if in.CompanyID == "" {
		return errors.New("ledger: company required")
	}
	if in.Number <= 0 {
		return errors.New("ledger: account number must be positive")
	}
	if in.Name == "" {
		return errors.New("ledger: account name required")
	}
	if _, err := ParseAccountType(in.Type); err != nil {
		return err
	}
	return nil
}
