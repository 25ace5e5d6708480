package accounts

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

func (s *Service) ListByCompany(ctx context.Context, companyID string) ([]Account, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

// Upsert creates or replaces an account by id. Deactivation is advisory:
// no usage check is made against historical voucher rows.
func (s *Service) Upsert(ctx context.Context, in UpsertInput) (Account, error) {
	if err := in.Validate(); err != nil {
		return Account{}, err
	}
	kind, err := ParseAccountType(in.Type)
	if err != nil {
		return Account{}, err
	}
	id := uuid.NewString()
	if in.ID != nil && *in.ID != "" {
		id = *in.ID
	}
	account := Account{
		ID:        id,
		CompanyID: in.CompanyID,
		Number:    in.Number,
		Name:      in.Name,
		Type:      kind,
		VATCode:   in.VATCode,
		IsActive:  in.IsActive,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.UpsertAccount(ctx, account); err != nil {
			return err
		}
		return tx.InsertAuditEntry(ctx, audit.Entry{
			ID:         uuid.NewString(),
			CompanyID:  account.CompanyID,
			EntityType: "account",
			EntityID:   account.ID,
			Action:     "account.upsert",
			Payload:    map[string]any{"number": account.Number},
			CreatedAt:  account.CreatedAt,
			CreatedBy:  in.Actor,
		})
	})
	if err != nil {
		return Account{}, err
	}
	return account, nil
}
