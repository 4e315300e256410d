package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/domain"
	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/workers"
)

type SessionService struct {
	repo     domain.SessionRepository
	itemRepo domain.ItemRepository
	worker   *workers.RollupWorker
}

func NewSessionService(repo domain.SessionRepository, itemRepo domain.ItemRepository, worker *workers.RollupWorker) *SessionService {
	return &SessionService{
		repo:     repo,
		itemRepo: itemRepo,
		worker:   worker,
	}
}

type CreateSessionInput struct {
	ItemID   string
	UserID   string
	Date     time.Time
	Value    float64
	Duration int
	Notes    string
}

type UpdateSessionInput struct {
	ID       string
	UserID   string
	Value    float64
	Duration int
	Notes    string
	Version  int
}

func (s *SessionService) Create(ctx context.Context, input CreateSessionInput) (*domain.ProgressSession, error) {
	session := domain.NewProgressSession(input.ItemID, input.UserID, input.Date, input.Value, input.Duration)
	session.Notes = input.Notes

	if err := session.Validate(); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetByID(ctx, session.ItemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != session.UserID {
		return nil, domain.ErrUnauthorized
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	s.worker.Enqueue(session.ItemID)

	return session, nil
}

func (s *SessionService) Update(ctx context.Context, input UpdateSessionInput) (*domain.ProgressSession, error) {
	existing, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && existing.Version != input.Version {
		return nil, domain.ErrSessionConflict
	}

	existing.Value = input.Value
	existing.Duration = input.Duration
	existing.Notes = input.Notes

	existing.Version++
	existing.UpdatedAt = time.Now().UTC()

	if err := existing.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.worker.Enqueue(existing.ItemID)

	return existing, nil
}

func (s *SessionService) GetByID(ctx context.Context, id string, userID string) (*domain.ProgressSession, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return session, nil
}

func (s *SessionService) ListByItemID(ctx context.Context, itemID string, userID string, from, to time.Time) ([]*domain.ProgressSession, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, domain.ErrUnauthorized
	}

	return s.repo.ListByItemID(ctx, itemID, from, to)
}

func (s *SessionService) Delete(ctx context.Context, id string, userID string) error {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if session.UserID != userID {
		return domain.ErrUnauthorized
	}

	itemID := session.ItemID

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.worker.Enqueue(itemID)

	return nil
}
