package stats

import (
	"math"

	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/domain"
)

// Legacy reading-tracker payloads predate the generic item/session model.
// Instead of probing field names inside the aggregation, clients of old
// data normalize once at the boundary and feed the canonical types to
// Compute/ComputeGraph.

// ReadingBook is the legacy book shape: progress expressed as a current
// page against a page count.
type ReadingBook struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	CoverURI      string          `json:"coverUri"`
	Color         string          `json:"color"`
	TotalPages    float64         `json:"totalPages"`
	CurrentPage   float64         `json:"currentPage"`
	StartDate     domain.FlexDate `json:"startDate"`
	CompletedDate domain.FlexDate `json:"completedDate"`
}

// ReadingSession is the legacy session shape: progress expressed as a
// start/end page pair instead of a value.
type ReadingSession struct {
	ID        string          `json:"id"`
	BookID    string          `json:"bookId"`
	StartPage float64         `json:"startPage"`
	EndPage   float64         `json:"endPage"`
	Duration  int             `json:"duration"`
	Date      domain.FlexDate `json:"date"`
	Notes     string          `json:"notes"`
}

// ItemFromBook maps a legacy book onto the canonical TrackableItem.
func ItemFromBook(b ReadingBook) *domain.TrackableItem {
	return &domain.TrackableItem{
		ID:            b.ID,
		Title:         b.Title,
		Subtitle:      b.Author,
		Category:      domain.CategoryReading,
		Color:         b.Color,
		CoverURI:      b.CoverURI,
		Progress:      math.Max(0, b.CurrentPage),
		Total:         math.Max(0, b.TotalPages),
		StartDate:     b.StartDate,
		CompletedDate: b.CompletedDate,
	}
}

// SessionFromReading maps a legacy reading session onto the canonical
// ProgressSession. The page pair collapses to a single value; a backwards
// pair contributes nothing rather than a negative amount.
func SessionFromReading(rs ReadingSession) *domain.ProgressSession {
	return &domain.ProgressSession{
		ID:       rs.ID,
		ItemID:   rs.BookID,
		Value:    math.Max(0, rs.EndPage-rs.StartPage),
		Duration: rs.Duration,
		Date:     rs.Date,
		Notes:    rs.Notes,
	}
}

// NormalizeBooks converts a legacy book list in input order.
func NormalizeBooks(books []ReadingBook) []*domain.TrackableItem {
	items := make([]*domain.TrackableItem, 0, len(books))
	for _, b := range books {
		items = append(items, ItemFromBook(b))
	}
	return items
}

// NormalizeReadingSessions converts a legacy session list in input order.
func NormalizeReadingSessions(sessions []ReadingSession) []*domain.ProgressSession {
	out := make([]*domain.ProgressSession, 0, len(sessions))
	for _, rs := range sessions {
		out = append(out, SessionFromReading(rs))
	}
	return out
}
