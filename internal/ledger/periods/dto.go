package periods

import (
	"errors"
	"fmt"
	"time"
)

// LockInput groups fields required to lock a period.
type LockInput struct {
	CompanyID   string
	PeriodStart string
	PeriodEnd   string
	LockedBy    string
}

// Validate ensures the lock describes a well-formed inclusive range.
func (in LockInput) Validate() error {
	if in.CompanyID == "" {
		return errors.New("ledger: company required")
	}
	for _, date := range []string{in.PeriodStart, in.PeriodEnd} {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return fmt.Errorf("ledger: invalid date %q", date)
		}
	}
	if in.PeriodEnd < in.PeriodStart {
		return errors.New("ledger: period end precedes start")
	}
	return nil
}
