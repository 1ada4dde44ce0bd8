package companies

import (
	"context"
	"errors"
	"strings"
)

// Service wraps company business rules.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get fetches a company by ID.
func (s *Service) Get(ctx context.Context, id int64) (Company, error) {
	if id <= 0 {
		return Company{}, errors.New("invalid company ID")
	}
	return s.repo.Get(ctx, id)
}

// Create registers a new company on the Basic plan unless another plan is
// given.
func (s *Service) Create(ctx context.Context, name string, plan SubscriptionPlan) (Company, error) {
	if strings.TrimSpace(name) == "" {
		return Company{}, errors.New("company name is required")
	}
	c := NewBasic(name)
	if plan != "" {
		c.Plan = plan
	}
	return s.repo.Create(ctx, c)
}
