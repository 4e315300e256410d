package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/domain"
)

type InMemoryItemRepository struct {
	store map[string]*domain.TrackableItem

	mu sync.RWMutex
}

func NewInMemoryItemRepository() *InMemoryItemRepository {
	return &InMemoryItemRepository{
		store: make(map[string]*domain.TrackableItem),
	}
}

func (r *InMemoryItemRepository) Create(ctx context.Context, item *domain.TrackableItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[item.ID] = item
	return nil
}

func (r *InMemoryItemRepository) GetByID(ctx context.Context, id string) (*domain.TrackableItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.store[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

func (r *InMemoryItemRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.TrackableItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []*domain.TrackableItem
	for _, item := range r.store {
		if item.UserID == userID {
			items = append(items, item)
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].SortOrder < items[j].SortOrder
	})

	return items, nil
}

func (r *InMemoryItemRepository) Update(ctx context.Context, item *domain.TrackableItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[item.ID]; !ok {
		return domain.ErrItemNotFound
	}

	r.store[item.ID] = item
	return nil
}

func (r *InMemoryItemRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrItemNotFound
	}

	delete(r.store, id)
	return nil
}

type InMemorySessionRepository struct {
	store map[string]*domain.ProgressSession

	mu sync.RWMutex
}

func NewInMemorySessionRepository() *InMemorySessionRepository {
	return &InMemorySessionRepository{
		store: make(map[string]*domain.ProgressSession),
	}
}

func (r *InMemorySessionRepository) Create(ctx context.Context, session *domain.ProgressSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[session.ID] = session
	return nil
}

func (r *InMemorySessionRepository) GetByID(ctx context.Context, id string) (*domain.ProgressSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.store[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (r *InMemorySessionRepository) ListByItemID(ctx context.Context, itemID string, from, to time.Time) ([]*domain.ProgressSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sessions []*domain.ProgressSession
	for _, s := range r.store {
		if s.ItemID != itemID {
			continue
		}
		if s.Date.Valid() {
			d := s.Date.Time()
			if d.Before(from) || d.After(to) {
				continue
			}
		}
		sessions = append(sessions, s)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Date.Time().After(sessions[j].Date.Time())
	})

	return sessions, nil
}

func (r *InMemorySessionRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.ProgressSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sessions []*domain.ProgressSession
	for _, s := range r.store {
		if s.UserID == userID {
			sessions = append(sessions, s)
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Date.Time().After(sessions[j].Date.Time())
	})

	return sessions, nil
}

func (r *InMemorySessionRepository) Update(ctx context.Context, session *domain.ProgressSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[session.ID]; !ok {
		return domain.ErrSessionNotFound
	}

	r.store[session.ID] = session
	return nil
}

func (r *InMemorySessionRepository) Delete(ctx context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.store[id]
	if !ok || session.UserID != userID {
		return domain.ErrSessionNotFound
	}

	delete(r.store, id)
	return nil
}

type InMemoryUserRepository struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}

	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
