package series

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListByCompany(ctx context.Context, companyID string) ([]Series, error) {
	return s.repo.ListByCompany(ctx, companyID)
}
