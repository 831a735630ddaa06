package dashboard

import (
	"context"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Stats assembles the aggregate snapshot. "Delivered today" counts from
// local midnight.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	total, active, err := s.repo.PatientCounts(ctx)
	if err != nil {
		return nil, err
	}
	staff, err := s.repo.StaffCount(ctx)
	if err != nil {
		return nil, err
	}
	persons, err := s.repo.DeliveryPersonCount(ctx)
	if err != nil {
		return nil, err
	}
	prepCounts, err := s.repo.PreparationStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	deliveryCounts, err := s.repo.DeliveryStatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	deliveredToday, err := s.repo.DeliveredSince(ctx, midnight)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalPatients:       total,
		ActivePatients:      active,
		StaffCount:          staff,
		DeliveryPersonCount: persons,
		PreparationStatus:   prepCounts,
		DeliveryStatus:      deliveryCounts,
		DeliveredToday:      deliveredToday,
	}, nil
}
