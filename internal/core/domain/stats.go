package domain

import "time"

// ProgressStats is the snapshot rendered on a share banner. It is freshly
// built on every aggregation call and never mutated afterwards.
type ProgressStats struct {
	ProgressThisWeek  float64 `json:"progress_this_week"`
	ProgressThisMonth float64 `json:"progress_this_month"`

	ItemsCompletedThisMonth     int              `json:"items_completed_this_month"`
	ItemsCompletedThisMonthList []*TrackableItem `json:"items_completed_this_month_list"`
	ItemsInProgressThisMonth    []*TrackableItem `json:"items_in_progress_this_month"`
	TopItemThisWeek             *TrackableItem   `json:"top_item_this_week"`

	TotalItems        int     `json:"total_items"`
	TotalProgressEver float64 `json:"total_progress_ever"`
	AvgProgressPerDay float64 `json:"avg_progress_per_day"`

	// GoalPercentage is ProgressThisMonth against the monthly goal,
	// rounded and clamped to [0, 100].
	GoalPercentage int     `json:"goal_percentage"`
	CurrentStreak  int     `json:"current_streak"`
	TotalPoints    float64 `json:"total_points"`

	ProgressLabel string `json:"progress_label"`
	ItemLabel     string `json:"item_label"`
}

// GraphDay is one bucket of the activity heatmap.
type GraphDay struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	// Intensity classifies the day's volume on a 0-4 scale for coloring.
	Intensity int  `json:"intensity"`
	IsToday   bool `json:"is_today"`
}

// GraphData is a fixed-length, oldest-first day series for heatmap rendering.
type GraphData struct {
	Days []GraphDay `json:"days"`

	TotalDays     int     `json:"total_days"`
	ActiveDays    int     `json:"active_days"`
	TotalValue    float64 `json:"total_value"`
	MaxValueInDay float64 `json:"max_value_in_day"`
	// CurrentStreak is recomputed locally over only the rendered window,
	// so it can trail the stats aggregator's streak when the window is
	// shorter than the actual run.
	CurrentStreak int `json:"current_streak"`

	ValueLabel string `json:"value_label,omitempty"`
}
