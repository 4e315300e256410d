package stats

import (
	"math"
	"time"

	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/domain"
)

const (
	// DefaultGraphDays is the heatmap window when the caller supplies none.
	DefaultGraphDays = 30
)

// DefaultThresholds are the ascending intensity boundaries. The lowest one
// is intentionally unused by the bucketing formula: any positive sum below
// the second threshold maps to intensity 1. Observed product behavior,
// preserved as-is.
var DefaultThresholds = [4]float64{1, 15, 30, 50}

// GraphOptions tune a ComputeGraph call. The zero value means: 30 days,
// DefaultThresholds, now = time.Now().
type GraphOptions struct {
	// Days is the number of buckets to generate. 0 falls back to
	// DefaultGraphDays; negative values yield an empty series.
	Days int

	// Thresholds are the four ascending intensity boundaries. The zero
	// value falls back to DefaultThresholds.
	Thresholds [4]float64

	// Now is the reference instant; the last bucket is the day containing it.
	Now time.Time

	ValueLabel string
}

// ComputeGraph buckets sessions into a fixed-length, oldest-first day
// series ending at the day containing now. Days without sessions are
// zero-filled, so the series length depends only on the option, never on
// the input. Sessions whose date does not parse are excluded.
func ComputeGraph(sessions []*domain.ProgressSession, opts GraphOptions) *domain.GraphData {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	daysToShow := opts.Days
	if daysToShow == 0 {
		daysToShow = DefaultGraphDays
	}
	if daysToShow < 0 {
		daysToShow = 0
	}

	thresholds := opts.Thresholds
	if thresholds == ([4]float64{}) {
		thresholds = DefaultThresholds
	}

	// Pre-index once so each bucket is a map lookup instead of a rescan
	// of the whole session list.
	sums := make(map[string]float64)
	for _, s := range sessions {
		if s == nil || !s.Date.Valid() {
			continue
		}
		sums[dayKey(s.Date.Time(), now.Location())] += math.Max(0, s.Value)
	}

	today := startOfDay(now)
	todayKey := today.Format(dayKeyLayout)

	days := make([]domain.GraphDay, 0, daysToShow)
	var totalValue, maxValue float64
	activeDays := 0

	for i := daysToShow - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		key := day.Format(dayKeyLayout)
		value := math.Max(0, sums[key])

		days = append(days, domain.GraphDay{
			Date:      day,
			Value:     value,
			Intensity: intensity(value, thresholds),
			IsToday:   key == todayKey,
		})

		totalValue += value
		if value > maxValue {
			maxValue = value
		}
		if value > 0 {
			activeDays++
		}
	}

	// Streak local to the rendered window: walk from the newest bucket
	// backward, stop at the first empty day. It can disagree with the
	// stats aggregator's 365-day streak when the window is shorter than
	// the real run; that divergence is intentional scope-limiting.
	streak := 0
	for i := len(days) - 1; i >= 0; i-- {
		if days[i].Value <= 0 {
			break
		}
		streak++
	}

	return &domain.GraphData{
		Days:          days,
		TotalDays:     len(days),
		ActiveDays:    activeDays,
		TotalValue:    totalValue,
		MaxValueInDay: maxValue,
		CurrentStreak: streak,
		ValueLabel:    opts.ValueLabel,
	}
}

func intensity(sum float64, thresholds [4]float64) int {
	switch {
	case sum <= 0:
		return 0
	case sum >= thresholds[3]:
		return 4
	case sum >= thresholds[2]:
		return 3
	case sum >= thresholds[1]:
		return 2
	default:
		return 1
	}
}
