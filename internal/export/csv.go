package export

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kontobok/kontobok/internal/ledger/vouchers"
)

// Fixed headers of the two export files. Downstream tooling matches on
// these byte-for-byte.
const (
	voucherCSVHeader = "id,voucher_number,date,description,counterparty,posted_at"
	rowCSVHeader     = "voucher_id,account_id,description,debit_cents,credit_cents,vat_code"
)

// csvTargets resolves the output locations. A target ending in .csv is
// used for the voucher file with a sibling voucher_rows.csv; anything
// else is treated as a directory.
func csvTargets(target string) (voucherPath, rowPath string) {
	if strings.EqualFold(filepath.Ext(target), ".csv") {
		return target, filepath.Join(filepath.Dir(target), "voucher_rows.csv")
	}
	return filepath.Join(target, "vouchers.csv"), filepath.Join(target, "voucher_rows.csv")
}

// renderCSV produces the line sets for both files. Commas inside
// free-text fields are replaced with spaces instead of quoting; the
// format is lossy but deterministic and must stay that way for
// compatibility with existing consumers.
func renderCSV(items []vouchers.Voucher) (voucherLines, rowLines []string) {
	voucherLines = []string{voucherCSVHeader}
	rowLines = []string{rowCSVHeader}
	for _, voucher := range items {
		voucherLines = append(voucherLines, strings.Join([]string{
			voucher.ID,
			formatInt(voucher.VoucherNumber),
			voucher.Date,
			csvField(voucher.Description),
			csvField(deref(voucher.Counterparty)),
			deref(voucher.PostedAt),
		}, ","))
		for _, row := range voucher.Rows {
			rowLines = append(rowLines, strings.Join([]string{
				voucher.ID,
				row.AccountID,
				csvField(deref(row.Description)),
				formatInt(row.DebitCents),
				formatInt(row.CreditCents),
				deref(row.VATCode),
			}, ","))
		}
	}
	return voucherLines, rowLines
}

func csvField(value string) string {
	return strings.ReplaceAll(value, ",", " ")
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func formatInt(value int64) string {
	return strconv.FormatInt(value, 10)
}
