package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kontobok/kontobok/internal/ledger/accounts"
	"github.com/kontobok/kontobok/internal/ledger/vouchers"
)

type memVoucherSource struct {
	items []vouchers.Voucher
}

func (m *memVoucherSource) List(_ context.Context, _ string, _, _ *string) ([]vouchers.Voucher, error) {
	return m.items, nil
}

type memAccountSource struct {
	items []accounts.Account
}

func (m *memAccountSource) ListByCompany(_ context.Context, _ string) ([]accounts.Account, error) {
	return m.items, nil
}

func strptr(s string) *string { return &s }

func sampleVouchers() []vouchers.Voucher {
	posted := "2024-03-15T12:00:00Z"
	return []vouchers.Voucher{
		{
			ID:            "v-1",
			CompanyID:     "company-1",
			SeriesID:      "series-a",
			VoucherNumber: 1,
			Date:          "2024-03-10",
			Description:   "Sale, March",
			Counterparty:  strptr("Acme, Inc"),
			CreatedAt:     "2024-03-10T08:00:00Z",
			CreatedBy:     "local",
			PostedAt:      &posted,
			Rows: []vouchers.VoucherRow{
				{ID: "r-1", VoucherID: "v-1", LineNo: 1, AccountID: "acct-bank", DebitCents: 12500},
				{ID: "r-2", VoucherID: "v-1", LineNo: 2, AccountID: "acct-sales", Description: strptr("goods, net"), CreditCents: 12500, VATCode: strptr("SE25")},
			},
		},
	}
}

func TestCSVWritesBothFiles(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(&memVoucherSource{items: sampleVouchers()}, &memAccountSource{})

	message, err := svc.CSV(context.Background(), Input{CompanyID: "company-1", TargetPath: dir})
	require.NoError(t, err)
	require.Contains(t, message, "CSV exported to")

	voucherData, err := os.ReadFile(filepath.Join(dir, "vouchers.csv"))
	require.NoError(t, err)
	lines := strings.Split(string(voucherData), "\n")
	require.Equal(t, "id,voucher_number,date,description,counterparty,posted_at", lines[0])
	require.Equal(t, "v-1,1,2024-03-10,Sale  March,Acme  Inc,2024-03-15T12:00:00Z", lines[1])

	rowData, err := os.ReadFile(filepath.Join(dir, "voucher_rows.csv"))
	require.NoError(t, err)
	rowLines := strings.Split(string(rowData), "\n")
	require.Equal(t, "voucher_id,account_id,description,debit_cents,credit_cents,vat_code", rowLines[0])
	require.Equal(t, "v-1,acct-bank,,12500,0,", rowLines[1])
	require.Equal(t, "v-1,acct-sales,goods  net,0,12500,SE25", rowLines[2])
}

func TestCSVTargetWithExtension(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out", "export.csv")
	svc := NewService(&memVoucherSource{items: sampleVouchers()}, &memAccountSource{})

	_, err := svc.CSV(context.Background(), Input{CompanyID: "company-1", TargetPath: target})
	require.NoError(t, err)

	require.FileExists(t, target)
	require.FileExists(t, filepath.Join(dir, "out", "voucher_rows.csv"))
}

func TestCSVRequiresCompanyAndTarget(t *testing.T) {
	svc := NewService(&memVoucherSource{}, &memAccountSource{})

	_, err := svc.CSV(context.Background(), Input{TargetPath: t.TempDir()})
	require.Error(t, err)

	_, err = svc.CSV(context.Background(), Input{CompanyID: "company-1", TargetPath: "  "})
	require.Error(t, err)
}

func TestCSVEmptyLedgerStillWritesHeaders(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(&memVoucherSource{}, &memAccountSource{})

	_, err := svc.CSV(context.Background(), Input{CompanyID: "company-1", TargetPath: dir})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "vouchers.csv"))
	require.NoError(t, err)
	require.Equal(t, "id,voucher_number,date,description,counterparty,posted_at", string(data))
}
