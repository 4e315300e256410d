package share

import (
	"errors"
	"math/rand"
	"regexp"
)

// Message kinds a share text can be composed for.
const (
	KindItemCompletion = "item_completion"
	KindProgress       = "progress"
	KindGoal           = "goal"
	KindStreak         = "streak"
)

var ErrUnknownMessageKind = errors.New("unknown share message kind")

var placeholderRegex = regexp.MustCompile(`\{(\w+)\}`)

var messageSets = map[string][]string{
	KindItemCompletion: {
		"Just finished '{title}'! {emoji}",
		"Another one done: '{title}' 🎉",
		"Highly recommend '{title}'. Worth every minute! ⭐",
	},
	KindProgress: {
		"Making great progress on '{title}' - {percentage}% complete! {emoji}",
		"Currently working through '{title}'. {progress} {progressLabel} so far! 💪",
		"Still at it with '{title}'. Loving the grind! ❤️",
	},
	KindGoal: {
		"Smashed my monthly goal with {progress} {progressLabel}! 🎯",
		"{progress} {progressLabel} this month! Feeling accomplished {emoji}",
		"Monthly goal achieved: {progress} {progressLabel}! Who's next? {emoji}",
	},
	KindStreak: {
		"On a {streak}-day streak! Consistency is key 🔥",
		"{streak} days in a row! Building better habits every day 💪",
		"Streak: {streak} days and counting! {emoji}✨",
	},
}

// ComposeMessage picks one of the templates for kind at random and fills
// its {placeholders} from vars. Placeholders without a matching variable
// are left untouched.
func ComposeMessage(kind string, vars map[string]string) (string, error) {
	set, ok := messageSets[kind]
	if !ok {
		return "", ErrUnknownMessageKind
	}
	return fill(set[rand.Intn(len(set))], vars), nil
}

// ComposeMessageAt is the deterministic variant: index selects the
// template (wrapping around), which keeps share previews stable.
func ComposeMessageAt(kind string, index int, vars map[string]string) (string, error) {
	set, ok := messageSets[kind]
	if !ok {
		return "", ErrUnknownMessageKind
	}
	if index < 0 {
		index = -index
	}
	return fill(set[index%len(set)], vars), nil
}

func fill(template string, vars map[string]string) string {
	return placeholderRegex.ReplaceAllStringFunc(template, func(match string) string {
		key := match[1 : len(match)-1]
		if v, ok := vars[key]; ok && v != "" {
			return v
		}
		return match
	})
}
