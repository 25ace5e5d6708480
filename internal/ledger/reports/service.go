package reports

import (
	"context"
)

// Service assembles read projections over committed ledger state.
type Service struct {
	repo  Repository
	cache *Cache
}

func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// VoucherList returns one summary row per voucher in date/number order.
func (s *Service) VoucherList(ctx context.Context, companyID string, fromDate, toDate *string) ([]VoucherSummary, error) {
	key, err := s.cache.BuildKey(ctx, "reports", "vouchers", companyID, rangeToken(fromDate), rangeToken(toDate))
	if err != nil {
		return nil, err
	}
	var out []VoucherSummary
	err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
		summaries, err := s.repo.VoucherSummaries(ctx, companyID, fromDate, toDate)
		if err != nil {
			return nil, err
		}
		if summaries == nil {
			summaries = []VoucherSummary{}
		}
		return summaries, nil
	})
	return out, err
}

// LedgerForAccount accumulates the running signed balance for one
// account, row by row, starting from zero.
func (s *Service) LedgerForAccount(ctx context.Context, companyID, accountID string, fromDate, toDate *string) ([]LedgerRow, error) {
	key, err := s.cache.BuildKey(ctx, "reports", "ledger", companyID, accountID, rangeToken(fromDate), rangeToken(toDate))
	if err != nil {
		return nil, err
	}
	var out []LedgerRow
	err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
		movements, err := s.repo.AccountMovements(ctx, companyID, accountID, fromDate, toDate)
		if err != nil {
			return nil, err
		}
		var balance int64
		for i := range movements {
			balance += movements[i].DebitCents - movements[i].CreditCents
			movements[i].BalanceCents = balance
		}
		if movements == nil {
			movements = []LedgerRow{}
		}
		return movements, nil
	})
	return out, err
}

func rangeToken(date *string) string {
	if date == nil {
		return "-"
	}
	return *date
}
