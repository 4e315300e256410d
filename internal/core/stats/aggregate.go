// Package stats turns raw trackable items and progress sessions into the
// period-bucketed snapshots a share banner renders. Both aggregators are
// pure: same inputs and same reference instant always produce the same
// output, nothing is mutated, and malformed dates degrade to exclusion
// instead of errors.
package stats

import (
	"math"
	"time"

	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/domain"
)

const (
	// DefaultGoal is the monthly progress target used when the caller
	// supplies none.
	DefaultGoal = 1000

	// maxStreakDays bounds the backward streak walk.
	maxStreakDays = 365
)

// Options tune a Compute call. The zero value means: goal 1000, now =
// time.Now(), generic display labels.
type Options struct {
	// Goal is the monthly progress target GoalPercentage is scaled
	// against. Values <= 0 fall back to DefaultGoal.
	Goal float64

	// Now is the reference instant all windows are computed against.
	Now time.Time

	ProgressLabel string
	ItemLabel     string
}

// Compute aggregates items and sessions into a ProgressStats snapshot.
//
// Windows relative to now: "this week" is the trailing 7 days inclusive,
// "this month" starts at the first calendar day of now's month (it resets
// on the 1st, it is not a rolling window).
//
// Sessions whose date does not parse are excluded from every aggregate,
// including TotalProgressEver. Sessions referencing an unknown item id
// still count toward the period sums but never become TopItemThisWeek.
func Compute(items []*domain.TrackableItem, sessions []*domain.ProgressSession, opts Options) *domain.ProgressStats {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	goal := opts.Goal
	if goal <= 0 {
		goal = DefaultGoal
	}

	progressLabel := opts.ProgressLabel
	itemLabel := opts.ItemLabel
	if progressLabel == "" {
		progressLabel = "Progress"
	}
	if itemLabel == "" {
		itemLabel = "Items"
	}

	weekStart := now.Add(-7 * 24 * time.Hour)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	itemsByID := make(map[string]*domain.TrackableItem, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if _, ok := itemsByID[it.ID]; !ok {
			itemsByID[it.ID] = it
		}
	}

	var (
		weekSum   float64
		monthSum  float64
		totalEver float64
		earliest  time.Time
	)

	// Weekly per-item totals, iterated in first-seen order so the
	// tie-break stays deterministic. Never range over the map itself.
	weekTotals := make(map[string]float64)
	var weekOrder []string

	for _, s := range sessions {
		if s == nil || !s.Date.Valid() {
			continue
		}

		date := s.Date.Time()
		value := math.Max(0, s.Value)

		totalEver += value
		if earliest.IsZero() || date.Before(earliest) {
			earliest = date
		}

		if inWindow(date, weekStart, now) {
			weekSum += value
			if _, seen := weekTotals[s.ItemID]; !seen {
				weekOrder = append(weekOrder, s.ItemID)
			}
			weekTotals[s.ItemID] += value
		}
		if inWindow(date, monthStart, now) {
			monthSum += value
		}
	}

	// Winner is replaced only on a strictly greater sum, so the
	// first-seen item keeps the crown on ties.
	var topItemID string
	var topValue float64
	for _, id := range weekOrder {
		if weekTotals[id] > topValue {
			topValue = weekTotals[id]
			topItemID = id
		}
	}
	var topItem *domain.TrackableItem
	if topItemID != "" {
		topItem = itemsByID[topItemID]
	}

	completedList := make([]*domain.TrackableItem, 0)
	inProgressList := make([]*domain.TrackableItem, 0)
	var totalPoints float64

	for _, it := range items {
		if it == nil {
			continue
		}

		totalPoints += it.Points()

		if it.CompletedDate.Valid() {
			if inWindow(it.CompletedDate.Time(), monthStart, now) {
				completedList = append(completedList, it)
			}
			continue
		}

		// Started this month and not yet done. Start dates are normally
		// <= now, so no upper bound check here.
		if it.StartDate.Valid() && !it.StartDate.Time().Before(monthStart) {
			inProgressList = append(inProgressList, it)
		}
	}

	streak := trailingStreak(activeDayKeys(sessions, now.Location()), now, maxStreakDays)

	var avgPerDay float64
	if !earliest.IsZero() {
		days := math.Ceil(now.Sub(earliest).Hours() / 24)
		if days < 1 {
			days = 1
		}
		avgPerDay = totalEver / days
	}

	goalPct := int(math.Round(monthSum / goal * 100))
	if goalPct > 100 {
		goalPct = 100
	}
	if goalPct < 0 {
		goalPct = 0
	}

	return &domain.ProgressStats{
		ProgressThisWeek:  math.Max(0, weekSum),
		ProgressThisMonth: math.Max(0, monthSum),

		ItemsCompletedThisMonth:     len(completedList),
		ItemsCompletedThisMonthList: completedList,
		ItemsInProgressThisMonth:    inProgressList,
		TopItemThisWeek:             topItem,

		TotalItems:        len(items),
		TotalProgressEver: math.Max(0, totalEver),
		AvgProgressPerDay: math.Max(0, avgPerDay),

		GoalPercentage: goalPct,
		CurrentStreak:  streak,
		TotalPoints:    math.Max(0, totalPoints),

		ProgressLabel: progressLabel,
		ItemLabel:     itemLabel,
	}
}
