package vouchers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kontobok/kontobok/internal/ledger/shared"
)

func validInput() CreateInput {
	return CreateInput{
		CompanyID:   "company-1",
		SeriesID:    "series-a",
		Date:        "2024-03-10",
		Description: "Invoice 1001",
		Rows: []RowInput{
			{AccountID: "acct-bank", DebitCents: 2500},
			{AccountID: "acct-sales", CreditCents: 2500},
		},
	}
}

func TestValidateAcceptsBalancedVoucher(t *testing.T) {
	require.NoError(t, validInput().Validate())
}

func TestValidateEmptyRowsReportedBeforeBalance(t *testing.T) {
	in := validInput()
	in.Rows = []RowInput{}
	in.Description = ""
	require.ErrorIs(t, in.Validate(), shared.ErrEmptyVoucher)
}

func TestValidateUnbalanced(t *testing.T) {
	in := validInput()
	in.Rows[0].DebitCents = 2600
	require.ErrorIs(t, in.Validate(), shared.ErrUnbalanced)
}

func TestValidateRejectsNegativeAmounts(t *testing.T) {
	in := validInput()
	in.Rows[0].DebitCents = -100
	in.Rows[1].CreditCents = -100
	err := in.Validate()
	require.Error(t, err)
	require.NotErrorIs(t, err, shared.ErrUnbalanced)
}

func TestValidateRejectsMissingAccount(t *testing.T) {
	in := validInput()
	in.Rows[0].AccountID = ""
	require.Error(t, in.Validate())
}

func TestValidateRejectsBadDate(t *testing.T) {
	in := validInput()
	in.Date = "10/03/2024"
	require.Error(t, in.Validate())
}

func TestValidateZeroRowsBalance(t *testing.T) {
	in := validInput()
	in.Rows = []RowInput{{AccountID: "acct-bank"}}
	require.NoError(t, in.Validate())
}
