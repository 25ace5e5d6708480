package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kontobok/kontobok/internal/ledger/accounts"
	"github.com/kontobok/kontobok/internal/ledger/vouchers"
)

// VoucherSource supplies vouchers with rows for a company.
type VoucherSource interface {
	List(ctx context.Context, companyID string, fromDate, toDate *string) ([]vouchers.Voucher, error)
}

// AccountSource supplies the chart of accounts for a company.
type AccountSource interface {
	ListByCompany(ctx context.Context, companyID string) ([]accounts.Account, error)
}

// Input names the company to export and where to write the files.
type Input struct {
	CompanyID  string
	TargetPath string
}

type Service struct {
	vouchers VoucherSource
	accounts AccountSource
}

func NewService(voucherSource VoucherSource, accountSource AccountSource) *Service {
	return &Service{vouchers: voucherSource, accounts: accountSource}
}

// CSV writes vouchers.csv and voucher_rows.csv for a company and
// returns a human-readable confirmation naming both files.
func (s *Service) CSV(ctx context.Context, in Input) (string, error) {
	if err := validateInput(in); err != nil {
		return "", err
	}
	items, err := s.vouchers.List(ctx, in.CompanyID, nil, nil)
	if err != nil {
		return "", err
	}
	voucherPath, rowPath := csvTargets(in.TargetPath)
	voucherLines, rowLines := renderCSV(items)
	if err := writeLines(voucherPath, voucherLines); err != nil {
		return "", err
	}
	if err := writeLines(rowPath, rowLines); err != nil {
		return "", err
	}
	return fmt.Sprintf("CSV exported to %s and %s", voucherPath, rowPath), nil
}

// SIE writes a SIE type 4 stub file for a company.
func (s *Service) SIE(ctx context.Context, in Input) (string, error) {
	if err := validateInput(in); err != nil {
		return "", err
	}
	accts, err := s.accounts.ListByCompany(ctx, in.CompanyID)
	if err != nil {
		return "", err
	}
	items, err := s.vouchers.List(ctx, in.CompanyID, nil, nil)
	if err != nil {
		return "", err
	}
	path := sieTarget(in.TargetPath)
	if err := writeLines(path, renderSIE(accts, items)); err != nil {
		return "", err
	}
	return fmt.Sprintf("SIE stub exported to %s", path), nil
}

func validateInput(in Input) error {
	if in.CompanyID == "" {
		return errors.New("export: company id required")
	}
	if strings.TrimSpace(in.TargetPath) == "" {
		return errors.New("export: target path required")
	}
	return nil
}

func writeLines(path string, lines []string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
}
