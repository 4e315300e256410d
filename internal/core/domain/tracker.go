package domain

// Tracker categories decide which labels and emoji the banner shows.
// They never influence the aggregation itself.
const (
	CategoryReading  = "reading"
	CategoryPomodoro = "pomodoro"
	CategorySkill    = "skill"
	CategoryHabit    = "habit"
	CategoryFitness  = "fitness"
	CategoryCustom   = "custom"
)

// TrackerLabels are the display strings resolved from a tracker category.
type TrackerLabels struct {
	Emoji         string `json:"emoji"`
	ProgressLabel string `json:"progress_label"`
	ItemLabel     string `json:"item_label"`
}

var trackerLabels = map[string]TrackerLabels{
	CategoryReading:  {Emoji: "📚", ProgressLabel: "Pages", ItemLabel: "Books"},
	CategoryPomodoro: {Emoji: "🍅", ProgressLabel: "Minutes", ItemLabel: "Tasks"},
	CategorySkill:    {Emoji: "💪", ProgressLabel: "Sessions", ItemLabel: "Skills"},
	CategoryHabit:    {Emoji: "✅", ProgressLabel: "Days", ItemLabel: "Habits"},
	CategoryFitness:  {Emoji: "🏋️", ProgressLabel: "Reps", ItemLabel: "Workouts"},
}

var defaultTrackerLabels = TrackerLabels{
	Emoji:         "⭐",
	ProgressLabel: "Progress",
	ItemLabel:     "Items",
}

// LabelsForCategory resolves display labels for a tracker category,
// falling back to the generic set for unknown categories.
func LabelsForCategory(category string) TrackerLabels {
	if labels, ok := trackerLabels[category]; ok {
		return labels
	}
	return defaultTrackerLabels
}

// NormalizeCategory maps any input onto a known category, keeping
// unknown ones as "custom" so display lookups stay total.
func NormalizeCategory(category string) string {
	if _, ok := trackerLabels[category]; ok {
		return category
	}
	return CategoryCustom
}

type pointsLevel struct {
	min  float64
	max  float64
	name string
}

var pointsLevels = []pointsLevel{
	{0, 99, "Novice"},
	{100, 299, "Beginner"},
	{300, 699, "Intermediate"},
	{700, 1499, "Advanced"},
	{1500, 2999, "Expert"},
	{3000, 5999, "Master"},
}

// LevelName buckets a points total into a display rank.
func LevelName(points float64) string {
	if points < 0 {
		return pointsLevels[0].name
	}
	for _, l := range pointsLevels {
		if points >= l.min && points <= l.max {
			return l.name
		}
	}
	return "Grand Master"
}
