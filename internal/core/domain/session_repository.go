package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrSessionNotFound = errors.New("progress session not found")
	ErrSessionConflict = errors.New("progress session version conflict")
)

type SessionRepository interface {
	// Create persists a new progress session.
	Create(ctx context.Context, session *ProgressSession) error

	// GetByID retrieves a single active (non-deleted) session.
	GetByID(ctx context.Context, id string) (*ProgressSession, error)

	// ListByItemID retrieves sessions logged against one item within a date
	// range. Optimized for calendar and chart views.
	ListByItemID(ctx context.Context, itemID string, from, to time.Time) ([]*ProgressSession, error)

	// ListByUserID retrieves every active session a user has logged,
	// feeding the banner aggregation which needs the full history.
	ListByUserID(ctx context.Context, userID string) ([]*ProgressSession, error)

	// Update modifies an existing session.
	// Implementations must handle Optimistic Locking (version check) to prevent data races.
	Update(ctx context.Context, session *ProgressSession) error

	// Delete performs a Soft Delete. It requires userID to ensure the user
	// actually owns the session being deleted.
	Delete(ctx context.Context, id string, userID string) error
}
