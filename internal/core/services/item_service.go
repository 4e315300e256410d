package services

import (
	"context"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/domain"
)

type ItemService struct {
	repo domain.ItemRepository
}

func NewItemService(repo domain.ItemRepository) *ItemService {
	return &ItemService{
		repo: repo,
	}
}

type CreateItemInput struct {
	UserID   string
	Title    string
	Subtitle string
	Category string
	Color    string
	Total    float64
}

type UpdateItemInput struct {
	ID       string
	UserID   string
	Title    string
	Subtitle string
	Category string
	Color    string
	Total    float64
	Version  int
}

func (s *ItemService) Create(ctx context.Context, input CreateItemInput) (*domain.TrackableItem, error) {
	item, err := domain.NewTrackableItem(input.UserID, input.Title, input.Subtitle, input.Category, input.Color, input.Total)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *ItemService) GetByID(ctx context.Context, id, userID string) (*domain.TrackableItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return item, nil
}

func (s *ItemService) ListByUserID(ctx context.Context, userID string) ([]*domain.TrackableItem, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *ItemService) Update(ctx context.Context, input UpdateItemInput) (*domain.TrackableItem, error) {
	item, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && item.Version != input.Version {
		return nil, fmt.Errorf("%w: client v%d vs server v%d", domain.ErrItemConflict, input.Version, item.Version)
	}

	if err := item.Update(input.Title, input.Subtitle, input.Category, input.Color, input.Total); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Complete marks the item done at the given instant (now when zero).
func (s *ItemService) Complete(ctx context.Context, id, userID string, at time.Time) (*domain.TrackableItem, error) {
	item, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if at.IsZero() {
		at = time.Now().UTC()
	}
	item.Complete(at)

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *ItemService) Reopen(ctx context.Context, id, userID string) (*domain.TrackableItem, error) {
	item, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	item.Reopen()

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *ItemService) Delete(ctx context.Context, id, userID string) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if item.UserID != userID {
		return domain.ErrUnauthorized
	}

	return s.repo.Delete(ctx, id)
}
