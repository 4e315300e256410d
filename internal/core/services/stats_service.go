package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/domain"
	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/stats"
)

// StatsService feeds a user's items and sessions through the pure
// aggregators and resolves the display labels from the tracker category.
type StatsService struct {
	itemRepo    domain.ItemRepository
	sessionRepo domain.SessionRepository
}

func NewStatsService(itemRepo domain.ItemRepository, sessionRepo domain.SessionRepository) *StatsService {
	return &StatsService{
		itemRepo:    itemRepo,
		sessionRepo: sessionRepo,
	}
}

type StatsInput struct {
	UserID   string
	Category string
	// Goal overrides the monthly target; <= 0 keeps the default.
	Goal float64
	// Now pins the reference instant, mainly for tests; zero means time.Now().
	Now time.Time
}

type GraphInput struct {
	UserID   string
	Category string
	// Days overrides the heatmap window; 0 keeps the default.
	Days int
	// Thresholds override the intensity boundaries; zero keeps the defaults.
	Thresholds [4]float64
	Now        time.Time
}

func (s *StatsService) GetProgressStats(ctx context.Context, input StatsInput) (*domain.ProgressStats, error) {
	items, err := s.itemRepo.ListByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.ListByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	labels := domain.LabelsForCategory(input.Category)

	return stats.Compute(items, sessions, stats.Options{
		Goal:          input.Goal,
		Now:           input.Now,
		ProgressLabel: labels.ProgressLabel,
		ItemLabel:     labels.ItemLabel,
	}), nil
}

func (s *StatsService) GetProgressGraph(ctx context.Context, input GraphInput) (*domain.GraphData, error) {
	sessions, err := s.sessionRepo.ListByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	labels := domain.LabelsForCategory(input.Category)

	return stats.ComputeGraph(sessions, stats.GraphOptions{
		Days:       input.Days,
		Thresholds: input.Thresholds,
		Now:        input.Now,
		ValueLabel: labels.ProgressLabel,
	}), nil
}
