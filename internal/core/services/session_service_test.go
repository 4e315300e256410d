package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/domain"
	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/services"
	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/workers"
)

type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) Create(ctx context.Context, session *domain.ProgressSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepo) Update(ctx context.Context, session *domain.ProgressSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepo) Delete(ctx context.Context, id string, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockSessionRepo) GetByID(ctx context.Context, id string) (*domain.ProgressSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgressSession), args.Error(1)
}

func (m *MockSessionRepo) ListByItemID(ctx context.Context, itemID string, from, to time.Time) ([]*domain.ProgressSession, error) {
	args := m.Called(ctx, itemID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ProgressSession), args.Error(1)
}

func (m *MockSessionRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.ProgressSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ProgressSession), args.Error(1)
}

type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.TrackableItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepo) GetByID(ctx context.Context, id string) (*domain.TrackableItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackableItem), args.Error(1)
}

func (m *MockItemRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.TrackableItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TrackableItem), args.Error(1)
}

func (m *MockItemRepo) Update(ctx context.Context, item *domain.TrackableItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestSessionService_Create(t *testing.T) {
	ctx := context.Background()
	userID := "user-1"
	when := time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC)

	newService := func(sessionRepo *MockSessionRepo, itemRepo *MockItemRepo) *services.SessionService {
		worker := workers.NewRollupWorker(itemRepo, sessionRepo)
		return services.NewSessionService(sessionRepo, itemRepo, worker)
	}

	t.Run("Success: creates a session for an owned item", func(t *testing.T) {
		sessionRepo := new(MockSessionRepo)
		itemRepo := new(MockItemRepo)
		svc := newService(sessionRepo, itemRepo)

		itemRepo.On("GetByID", ctx, "item-1").Return(&domain.TrackableItem{ID: "item-1", UserID: userID}, nil)
		sessionRepo.On("Create", ctx, mock.AnythingOfType("*domain.ProgressSession")).Return(nil)

		got, err := svc.Create(ctx, services.CreateSessionInput{
			ItemID:   "item-1",
			UserID:   userID,
			Date:     when,
			Value:    30,
			Duration: 25,
			Notes:    "morning session",
		})

		require.NoError(t, err)
		assert.Equal(t, 30.0, got.Value)
		assert.Equal(t, "morning session", got.Notes)
		assert.True(t, got.Date.Valid())
		sessionRepo.AssertExpectations(t)
	})

	t.Run("Fail: item owned by someone else", func(t *testing.T) {
		sessionRepo := new(MockSessionRepo)
		itemRepo := new(MockItemRepo)
		svc := newService(sessionRepo, itemRepo)

		itemRepo.On("GetByID", ctx, "item-1").Return(&domain.TrackableItem{ID: "item-1", UserID: "somebody-else"}, nil)

		_, err := svc.Create(ctx, services.CreateSessionInput{
			ItemID: "item-1", UserID: userID, Date: when, Value: 30,
		})

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		sessionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Fail: negative value is rejected before any repo call", func(t *testing.T) {
		sessionRepo := new(MockSessionRepo)
		itemRepo := new(MockItemRepo)
		svc := newService(sessionRepo, itemRepo)

		_, err := svc.Create(ctx, services.CreateSessionInput{
			ItemID: "item-1", UserID: userID, Date: when, Value: -5,
		})

		assert.Error(t, err)
		itemRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Fail: missing item propagates", func(t *testing.T) {
		sessionRepo := new(MockSessionRepo)
		itemRepo := new(MockItemRepo)
		svc := newService(sessionRepo, itemRepo)

		itemRepo.On("GetByID", ctx, "ghost").Return(nil, domain.ErrItemNotFound)

		_, err := svc.Create(ctx, services.CreateSessionInput{
			ItemID: "ghost", UserID: userID, Date: when, Value: 10,
		})

		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})
}

func TestSessionService_Update(t *testing.T) {
	ctx := context.Background()
	userID := "user-1"

	t.Run("Success: bumps version and persists", func(t *testing.T) {
		sessionRepo := new(MockSessionRepo)
		itemRepo := new(MockItemRepo)
		svc := services.NewSessionService(sessionRepo, itemRepo, workers.NewRollupWorker(itemRepo, sessionRepo))

		existing := &domain.ProgressSession{ID: "s1", ItemID: "item-1", UserID: userID, Value: 10, Version: 3}
		sessionRepo.On("GetByID", ctx, "s1").Return(existing, nil)
		sessionRepo.On("Update", ctx, mock.AnythingOfType("*domain.ProgressSession")).Return(nil)

		got, err := svc.Update(ctx, services.UpdateSessionInput{
			ID: "s1", UserID: userID, Value: 42, Version: 3,
		})

		require.NoError(t, err)
		assert.Equal(t, 42.0, got.Value)
		assert.Equal(t, 4, got.Version)
	})

	t.Run("Fail: stale version conflicts", func(t *testing.T) {
		sessionRepo := new(MockSessionRepo)
		itemRepo := new(MockItemRepo)
		svc := services.NewSessionService(sessionRepo, itemRepo, workers.NewRollupWorker(itemRepo, sessionRepo))

		existing := &domain.ProgressSession{ID: "s1", ItemID: "item-1", UserID: userID, Value: 10, Version: 5}
		sessionRepo.On("GetByID", ctx, "s1").Return(existing, nil)

		_, err := svc.Update(ctx, services.UpdateSessionInput{
			ID: "s1", UserID: userID, Value: 42, Version: 3,
		})

		assert.ErrorIs(t, err, domain.ErrSessionConflict)
	})
}

func TestSessionService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Fail: deleting another user's session", func(t *testing.T) {
		sessionRepo := new(MockSessionRepo)
		itemRepo := new(MockItemRepo)
		svc := services.NewSessionService(sessionRepo, itemRepo, workers.NewRollupWorker(itemRepo, sessionRepo))

		sessionRepo.On("GetByID", ctx, "s1").Return(&domain.ProgressSession{ID: "s1", UserID: "owner"}, nil)

		err := svc.Delete(ctx, "s1", "intruder")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Fail: repo error propagates", func(t *testing.T) {
		sessionRepo := new(MockSessionRepo)
		itemRepo := new(MockItemRepo)
		svc := services.NewSessionService(sessionRepo, itemRepo, workers.NewRollupWorker(itemRepo, sessionRepo))

		dbErr := errors.New("db connection lost")
		sessionRepo.On("GetByID", ctx, "s1").Return(nil, dbErr)

		err := svc.Delete(ctx, "s1", "user-1")
		assert.ErrorIs(t, err, dbErr)
	})
}
