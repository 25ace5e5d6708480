package periods

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDateWithinInclusiveBounds(t *testing.T) {
	require.True(t, DateWithin("2024-01-01", "2024-01-31", "2024-01-01"))
	require.True(t, DateWithin("2024-01-01", "2024-01-31", "2024-01-31"))
	require.True(t, DateWithin("2024-01-01", "2024-01-31", "2024-01-15"))
	require.False(t, DateWithin("2024-01-01", "2024-01-31", "2023-12-31"))
	require.False(t, DateWithin("2024-01-01", "2024-01-31", "2024-02-01"))
}

func TestAnyContains(t *testing.T) {
	locks := []PeriodLock{
		{PeriodStart: "2024-01-01", PeriodEnd: "2024-01-31"},
		{PeriodStart: "2024-03-01", PeriodEnd: "2024-03-31"},
	}
	require.True(t, AnyContains(locks, "2024-01-10"))
	require.True(t, AnyContains(locks, "2024-03-31"))
	require.False(t, AnyContains(locks, "2024-02-15"))
	require.False(t, AnyContains(nil, "2024-02-15"))
}

func TestLockInputValidate(t *testing.T) {
	in := LockInput{CompanyID: "company-1", PeriodStart: "2024-01-01", PeriodEnd: "2024-01-31"}
	require.NoError(t, in.Validate())

	in.PeriodEnd = "2023-12-31"
	require.Error(t, in.Validate())

	in.PeriodEnd = "31/01/2024"
	require.Error(t, in.Validate())

	in = LockInput{PeriodStart: "2024-01-01", PeriodEnd: "2024-01-31"}
	require.Error(t, in.Validate())
}
