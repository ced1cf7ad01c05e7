package catalog

import (
	"context"
)

// Service assembles the form content. It is stateless: the catalog is
// refetched on every request so capacity counters stay live.
type Service struct {
	repo Repository
}

// NewService creates catalog service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Content returns the full catalog.
func (s *Service) Content(ctx context.Context) (*FormContent, error) {
	tickets, err := s.repo.Tickets(ctx)
	if err != nil {
		return nil, err
	}
	beverages, err := s.repo.Beverages(ctx)
	if err != nil {
		return nil, err
	}
	food, err := s.repo.Food(ctx)
	if err != nil {
		return nil, err
	}
	shifts, err := s.repo.WorkShifts(ctx)
	if err != nil {
		return nil, err
	}
	materials, err := s.repo.Materials(ctx)
	if err != nil {
		return nil, err
	}
	professions, err := s.repo.Professions(ctx)
	if err != nil {
		return nil, err
	}

	return &FormContent{
		Tickets:     tickets,
		Beverages:   beverages,
		Food:        food,
		WorkShifts:  shifts,
		Materials:   materials,
		Professions: professions,
	}, nil
}
