package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kontobok/kontobok/internal/ledger/accounts"
	"github.com/kontobok/kontobok/internal/ledger/vouchers"
)

// sieTarget resolves the output path. Targets ending in .se or .sie are
// used as-is; anything else is treated as a directory.
func sieTarget(target string) string {
	switch strings.ToLower(filepath.Ext(target)) {
	case ".se", ".sie":
		return target
	}
	return filepath.Join(target, "export.sie")
}

// renderSIE produces a SIE type 4 stub. Header records are followed by
// one #KONTO per account and one #VER with #TRANS rows per voucher.
// Amounts stay in cents; a full SIE4 writer would emit decimal kronor
// and the remaining mandatory records.
func renderSIE(accts []accounts.Account, items []vouchers.Voucher) []string {
	lines := []string{
		"#FLAGGA 0",
		"#PROGRAM Kontobok 0.1",
		"#FORMAT PC8",
		"#SIETYP 4",
		"#TODO Implement full SIE4 export",
	}
	numbers := make(map[string]int64, len(accts))
	for _, account := range accts {
		numbers[account.ID] = account.Number
		lines = append(lines, fmt.Sprintf("#KONTO %d %q", account.Number, account.Name))
	}
	for _, voucher := range items {
		lines = append(lines, fmt.Sprintf("#VER A %d %s %q %s",
			voucher.VoucherNumber, voucher.Date, voucher.Description, voucher.CreatedAt))
		for _, row := range voucher.Rows {
			lines = append(lines, fmt.Sprintf("#TRANS %d %d %d",
				numbers[row.AccountID], row.DebitCents, row.CreditCents))
		}
	}
	return lines
}
