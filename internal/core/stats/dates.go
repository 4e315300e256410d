package stats

import (
	"time"

	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/domain"
)

const dayKeyLayout = "2006-01-02"

// startOfDay returns local midnight of the day containing t.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dayKey buckets t into the calendar day it falls in, as seen from loc.
// Both aggregators compare days through these keys, which is equivalent to
// the [00:00, 23:59:59.999…] day bounds.
func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayKeyLayout)
}

// inWindow reports whether t falls in [start, end], both endpoints inclusive.
func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// activeDayKeys collects the set of calendar days that have at least one
// dated session. Sessions without a parseable date are excluded.
func activeDayKeys(sessions []*domain.ProgressSession, loc *time.Location) map[string]bool {
	active := make(map[string]bool)
	for _, s := range sessions {
		if s == nil || !s.Date.Valid() {
			continue
		}
		active[dayKey(s.Date.Time(), loc)] = true
	}
	return active
}

// trailingStreak walks backward from the day containing now and counts
// consecutive active days, stopping at the first inactive one. The walk is
// bounded by limit, so a streak can never exceed it; with the 365-day bound
// this is a documented limitation of the algorithm, not an overflow guard
// to remove.
func trailingStreak(active map[string]bool, now time.Time, limit int) int {
	streak := 0
	day := startOfDay(now)
	for i := 0; i < limit; i++ {
		if !active[day.Format(dayKeyLayout)] {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
