package companies

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kontobok/kontobok/internal/audit"
	"github.com/kontobok/kontobok/internal/ledger/series"
)

// CreateInput groups fields for registering a company.
type CreateInput struct {
	Name      string
	OrgNumber *string
	Actor     string
}

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

func (s *Service) List(ctx context.Context) ([]Company, error) {
	return s.repo.List(ctx)
}

// Create registers a company together with its default voucher series
// "A" in one transaction. Fiscal year bounds default to the current
// calendar year.
func (s *Service) Create(ctx context.Context, in CreateInput) (Company, error) {
	if in.Name == "" {
		return Company{}, errors.New("ledger: company name required")
	}
	now := s.now().UTC()
	year := now.Year()
	company := Company{
		ID:              uuid.NewString(),
		Name:            in.Name,
		OrgNumber:       in.OrgNumber,
		FiscalYearStart: fmt.Sprintf("%d-01-01", year),
		FiscalYearEnd:   fmt.Sprintf("%d-12-31", year),
		CreatedAt:       now.Format(time.RFC3339),
	}
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.InsertCompany(ctx, company); err != nil {
			return err
		}
		if err := tx.InsertSeries(ctx, series.Series{
			ID:          uuid.NewString(),
			CompanyID:   company.ID,
			Code:        "A",
			Description: "Main series",
			NextNumber:  1,
		}); err != nil {
			return err
		}
		return tx.InsertAuditEntry(ctx, audit.Entry{
			ID:         uuid.NewString(),
			CompanyID:  company.ID,
			EntityType: "company",
			EntityID:   company.ID,
			Action:     "company.create",
			Payload:    map[string]any{"name": company.Name},
			CreatedAt:  company.CreatedAt,
			CreatedBy:  in.Actor,
		})
	})
	if err != nil {
		return Company{}, err
	}
	return company, nil
}
