package audit

import (
	"context"
	"fmt"
)

const defaultTimelineLimit = 100

// Service coordinates audit timeline reads.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Timeline lists the most recent entries for a company, newest first.
func (s *Service) Timeline(ctx context.Context, companyID string, limit int) ([]Entry, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("audit: repository not configured")
	}
	if companyID == "" {
		return nil, fmt.Errorf("audit: company id required")
	}
	if limit <= 0 || limit > 500 {
		limit = defaultTimelineLimit
	}
	return s.repo.ListByCompany(ctx, companyID, limit)
}
