package audit

import "context"

const defaultListLimit = 200

// Service exposes read access to the audit log.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Entry, error) {
	return s.repo.List(ctx, defaultListLimit)
}
