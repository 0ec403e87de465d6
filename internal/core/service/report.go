package service

import (
	"context"

	"drinkstand/internal/core/domain"
)

// Orders returns the log grouped by order, oldest first.
func (s *OrderService) Orders(ctx context.Context) ([]domain.Order, error) {
	lines, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.GroupByOrder(lines), nil
}

func (s *OrderService) Latest(ctx context.Context) (domain.Order, bool, error) {
	lines, err := s.LoadAll(ctx)
	if err != nil {
		return domain.Order{}, false, err
	}
	o, ok := domain.LatestOrder(lines)
	return o, ok, nil
}

func (s *OrderService) Stats(ctx context.Context) (domain.Stats, error) {
	lines, err := s.LoadAll(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.ComputeStats(lines), nil
}
