package domain

import (
	"context"
	"errors"
)

var (
	ErrItemNotFound = errors.New("trackable item not found")
	ErrItemConflict = errors.New("trackable item version conflict")
	ErrUnauthorized = errors.New("resource belongs to another user")
)

type ItemRepository interface {
	// Create persists a new trackable item.
	Create(ctx context.Context, item *TrackableItem) error

	// GetByID retrieves a single active (non-deleted) item.
	GetByID(ctx context.Context, id string) (*TrackableItem, error)

	// ListByUserID retrieves every active item a user tracks, ordered for display.
	ListByUserID(ctx context.Context, userID string) ([]*TrackableItem, error)

	// Update modifies an existing item.
	// Implementations must handle Optimistic Locking (version check) to prevent data races.
	Update(ctx context.Context, item *TrackableItem) error

	// Delete performs a Soft Delete on the item.
	Delete(ctx context.Context, id string) error
}
