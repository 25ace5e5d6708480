package shared

import "errors"

var (
	// ErrEmptyVoucher indicates a voucher without rows.
	ErrEmptyVoucher = errors.New("ledger: voucher must have rows")
	// ErrUnbalanced indicates debit != credit over the rows.
	ErrUnbalanced = errors.New("ledger: voucher does not balance")
	// ErrPeriodLocked indicates the voucher date falls inside a locked period.
	ErrPeriodLocked = errors.New("ledger: period is locked")
	// ErrSeriesMismatch indicates the series belongs to another company.
	ErrSeriesMismatch = errors.New("ledger: series does not belong to company")
	// ErrAlreadyPosted indicates the voucher is already finalized.
	ErrAlreadyPosted = errors.New("ledger: voucher is already posted")
	// ErrNotFound indicates a missing entity.
	ErrNotFound = errors.New("ledger: not found")
)
