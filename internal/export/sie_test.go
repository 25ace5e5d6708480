package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kontobok/kontobok/internal/ledger/accounts"
)

func sampleAccounts() []accounts.Account {
	return []accounts.Account{
		{ID: "acct-bank", CompanyID: "company-1", Number: 1930, Name: "Bankkonto", Type: accounts.AccountTypeAsset},
		{ID: "acct-sales", CompanyID: "company-1", Number: 3010, Name: "Försäljning", Type: accounts.AccountTypeIncome},
	}
}

func TestSIEStubLayout(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(&memVoucherSource{items: sampleVouchers()}, &memAccountSource{items: sampleAccounts()})

	message, err := svc.SIE(context.Background(), Input{CompanyID: "company-1", TargetPath: dir})
	require.NoError(t, err)
	require.Contains(t, message, "SIE stub exported to")

	data, err := os.ReadFile(filepath.Join(dir, "export.sie"))
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")

	require.Equal(t, "#FLAGGA 0", lines[0])
	require.Equal(t, "#PROGRAM Kontobok 0.1", lines[1])
	require.Equal(t, "#FORMAT PC8", lines[2])
	require.Equal(t, "#SIETYP 4", lines[3])
	require.Equal(t, `#KONTO 1930 "Bankkonto"`, lines[5])
	require.Equal(t, `#KONTO 3010 "Försäljning"`, lines[6])
	require.Equal(t, `#VER A 1 2024-03-10 "Sale, March" 2024-03-10T08:00:00Z`, lines[7])
	require.Equal(t, "#TRANS 1930 12500 0", lines[8])
	require.Equal(t, "#TRANS 3010 0 12500", lines[9])
}

func TestSIETargetWithExtensionUsedVerbatim(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "bokforing.SE")
	svc := NewService(&memVoucherSource{}, &memAccountSource{})

	_, err := svc.SIE(context.Background(), Input{CompanyID: "company-1", TargetPath: target})
	require.NoError(t, err)
	require.FileExists(t, target)
}

func TestSIEUnknownAccountFallsBackToZero(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(&memVoucherSource{items: sampleVouchers()}, &memAccountSource{})

	_, err := svc.SIE(context.Background(), Input{CompanyID: "company-1", TargetPath: dir})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "export.sie"))
	require.NoError(t, err)
	require.Contains(t, string(data), "#TRANS 0 12500 0")
}
