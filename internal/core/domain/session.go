package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidSession = errors.New("invalid progress session data")
)

// ProgressSession is one discrete, timestamped contribution of progress
// against a TrackableItem: pages read, minutes focused, reps done.
type ProgressSession struct {
	ID     string `json:"id" db:"id"`
	ItemID string `json:"item_id" db:"item_id"`
	UserID string `json:"user_id" db:"user_id"`

	Value float64 `json:"value" db:"value"`
	// Duration of the session in minutes, 0 when not tracked.
	Duration int      `json:"duration" db:"duration"`
	Date     FlexDate `json:"date" db:"date"`
	Notes    string   `json:"notes" db:"notes"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func NewProgressSession(itemID, userID string, date time.Time, value float64, duration int) *ProgressSession {
	now := time.Now().UTC()

	return &ProgressSession{
		ItemID:   itemID,
		UserID:   userID,
		Date:     NewFlexDate(date.UTC()),
		Value:    value,
		Duration: duration,

		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *ProgressSession) Validate() error {
	if strings.TrimSpace(s.ItemID) == "" {
		return errors.New("item_id is required")
	}
	if strings.TrimSpace(s.UserID) == "" {
		return errors.New("user_id is required")
	}
	if s.Value < 0 {
		return errors.New("value cannot be negative")
	}
	if s.Duration < 0 {
		return errors.New("duration cannot be negative")
	}
	return nil
}
