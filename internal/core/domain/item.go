package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrItemTitleEmpty    = errors.New("item title cannot be empty")
	ErrItemTitleTooLong  = errors.New("item title is too long (max 200 chars)")
	ErrItemInvalidUserID = errors.New("invalid user id")
	ErrInvalidColor      = errors.New("invalid color format (must be #RRGGBB)")
	ErrNegativeAmount    = errors.New("progress amounts cannot be negative")
	ErrItemCompleted     = errors.New("cannot log progress on a completed item")
)

var itemColorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

const (
	MaxItemTitleLen    = 200
	MaxItemSubtitleLen = 200
	DefaultItemColor   = "#a855f7"
)

// TrackableItem is anything a user tracks progress against: a book, a skill,
// a workout plan. Progress accumulates through ProgressSessions; a set
// CompletedDate is the sole completion signal, regardless of Progress vs Total.
type TrackableItem struct {
	ID       string `json:"id" db:"id"`
	UserID   string `json:"user_id" db:"user_id"`
	Title    string `json:"title" db:"title"`
	Subtitle string `json:"subtitle,omitempty" db:"subtitle"`
	Category string `json:"category" db:"category"`
	Color    string `json:"color" db:"color"`
	CoverURI string `json:"cover_uri,omitempty" db:"cover_uri"`

	Progress float64 `json:"progress" db:"progress"`
	// Total is the target amount. 0 means "no target".
	Total float64 `json:"total" db:"total"`

	StartDate     FlexDate `json:"start_date" db:"start_date"`
	CompletedDate FlexDate `json:"completed_date" db:"completed_date"`

	SortOrder int        `json:"sort_order" db:"sort_order"`
	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func validateItemFields(title, subtitle, color string, total float64) error {
	if strings.TrimSpace(title) == "" {
		return ErrItemTitleEmpty
	}
	if len(strings.TrimSpace(title)) > MaxItemTitleLen {
		return ErrItemTitleTooLong
	}
	if len(strings.TrimSpace(subtitle)) > MaxItemSubtitleLen {
		return ErrItemTitleTooLong
	}
	if color != "" && !itemColorRegex.MatchString(color) {
		return ErrInvalidColor
	}
	if total < 0 {
		return ErrNegativeAmount
	}
	return nil
}

func NewTrackableItem(userID, title, subtitle, category, color string, total float64) (*TrackableItem, error) {
	if userID == "" {
		return nil, ErrItemInvalidUserID
	}

	if err := validateItemFields(title, subtitle, color, total); err != nil {
		return nil, err
	}

	if color == "" {
		color = DefaultItemColor
	}

	now := time.Now().UTC()

	return &TrackableItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     strings.TrimSpace(title),
		Subtitle:  strings.TrimSpace(subtitle),
		Category:  NormalizeCategory(category),
		Color:     color,
		Total:     total,
		StartDate: NewFlexDate(now),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (i *TrackableItem) Update(title, subtitle, category, color string, total float64) error {
	if err := validateItemFields(title, subtitle, color, total); err != nil {
		return err
	}

	if color == "" {
		color = DefaultItemColor
	}

	i.Title = strings.TrimSpace(title)
	i.Subtitle = strings.TrimSpace(subtitle)
	i.Category = NormalizeCategory(category)
	i.Color = color
	i.Total = total
	i.UpdatedAt = time.Now().UTC()

	return nil
}

// IsCompleted reports whether the item has been marked done.
// Only CompletedDate matters here: an item at 100% progress with no
// completion date is still "in progress".
func (i *TrackableItem) IsCompleted() bool {
	return i.CompletedDate.Valid()
}

func (i *TrackableItem) AddProgress(amount float64) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	if i.IsCompleted() {
		return ErrItemCompleted
	}

	i.Progress += amount
	i.UpdatedAt = time.Now().UTC()
	return nil
}

func (i *TrackableItem) Complete(at time.Time) {
	if i.IsCompleted() {
		return
	}

	i.CompletedDate = NewFlexDate(at.UTC())
	i.UpdatedAt = time.Now().UTC()
}

func (i *TrackableItem) Reopen() {
	if !i.IsCompleted() {
		return
	}
	i.CompletedDate = FlexDate{}
	i.UpdatedAt = time.Now().UTC()
}

// Points an item is worth on the banner: the full target once completed,
// the accumulated progress otherwise.
func (i *TrackableItem) Points() float64 {
	if i.IsCompleted() {
		return i.Total
	}
	return i.Progress
}
