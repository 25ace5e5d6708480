package periods

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kontobok/kontobok/internal/audit"
)

type memRepo struct {
	locks []PeriodLock
	audit []audit.Entry
}

func (m *memRepo) ListByCompany(_ context.Context, companyID string) ([]PeriodLock, error) {
	var out []PeriodLock
	for _, lock := range m.locks {
		if lock.CompanyID == companyID {
			out = append(out, lock)
		}
	}
	return out, nil
}

func (m *memRepo) IsLocked(_ context.Context, companyID, date string) (bool, error) {
	for _, lock := range m.locks {
		if lock.CompanyID == companyID && DateWithin(lock.PeriodStart, lock.PeriodEnd, date) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	before := len(m.locks)
	beforeAudit := len(m.audit)
	if err := fn(ctx, m); err != nil {
		m.locks = m.locks[:before]
		m.audit = m.audit[:beforeAudit]
		return err
	}
	return nil
}

func (m *memRepo) InsertPeriodLock(_ context.Context, lock PeriodLock) error {
	m.locks = append(m.locks, lock)
	return nil
}

func (m *memRepo) InsertAuditEntry(_ context.Context, entry audit.Entry) error {
	m.audit = append(m.audit, entry)
	return nil
}

func TestLockWritesLockAndAuditTogether(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo)
	svc.WithNow(func() time.Time {
		return time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	})

	lock, err := svc.Lock(context.Background(), LockInput{
		CompanyID:   "company-1",
		PeriodStart: "2024-01-01",
		PeriodEnd:   "2024-01-31",
		LockedBy:    "local",
	})
	require.NoError(t, err)
	require.NotEmpty(t, lock.ID)
	require.Equal(t, "2024-02-01T09:00:00Z", lock.LockedAt)

	require.Len(t, repo.locks, 1)
	require.Len(t, repo.audit, 1)
	require.Equal(t, "period.lock", repo.audit[0].Action)
	require.Equal(t, lock.ID, repo.audit[0].EntityID)

	locked, err := svc.IsLocked(context.Background(), "company-1", "2024-01-15")
	require.NoError(t, err)
	require.True(t, locked)
}

func TestLockRejectsInvalidRange(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo)

	_, err := svc.Lock(context.Background(), LockInput{
		CompanyID:   "company-1",
		PeriodStart: "2024-02-01",
		PeriodEnd:   "2024-01-01",
		LockedBy:    "local",
	})
	require.Error(t, err)
	require.Empty(t, repo.locks)
	require.Empty(t, repo.audit)
}
