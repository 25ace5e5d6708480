package periods

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kontobok/kontobok/internal/audit"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Service) ListByCompany(ctx context.Context, companyID string) ([]PeriodLock, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

// IsLocked reports whether the date falls inside any lock for the
// company. Mutating flows must not use this read: they re-check inside
// their own transaction to stay race-free against concurrent locking.
func (s *Service) IsLocked(ctx context.Context, companyID, date string) (bool, error) {
	return s.repo.IsLocked(ctx, companyID, date)
}

// Lock freezes the given inclusive range. Locks are append-only; the
// audit entry commits atomically with the lock row.
func (s *Service) Lock(ctx context.Context, in LockInput) (PeriodLock, error) {
	if err := in.Validate(); err != nil {
		return PeriodLock{}, err
	}
	lock := PeriodLock{
		ID:          uuid.NewString(),
		CompanyID:   in.CompanyID,
		PeriodStart: in.PeriodStart,
		PeriodEnd:   in.PeriodEnd,
		LockedAt:    s.now().UTC().Format(time.RFC3339),
		LockedBy:    in.LockedBy,
	}
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.InsertPeriodLock(ctx, lock); err != nil {
			return err
		}
		return tx.InsertAuditEntry(ctx, audit.Entry{
			ID:         uuid.NewString(),
			CompanyID:  lock.CompanyID,
			EntityType: "period_lock",
			EntityID:   lock.ID,
			Action:     "period.lock",
			Payload: map[string]any{
				"period_start": lock.PeriodStart,
				"period_end":   lock.PeriodEnd,
			},
			CreatedAt: lock.LockedAt,
			CreatedBy: lock.LockedBy,
		})
	})
	if err != nil {
		return PeriodLock{}, err
	}
	return lock, nil
}
