// Package analytics accumulates share events in memory. The recorder is an
// explicitly constructed dependency, injected where it is needed; there is
// no package-level singleton.
package analytics

import (
	"sync"
	"time"

	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/domain"
)

// Summary is the rolled-up view of everything recorded so far.
type Summary struct {
	TotalShares      int            `json:"total_shares"`
	SharesByPlatform map[string]int `json:"shares_by_platform"`
	SuccessRate      float64        `json:"success_rate"`
	MostPopular      string         `json:"most_popular_platform"`
}

type Recorder struct {
	mu     sync.RWMutex
	events []domain.ShareEvent
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends one share event. A zero timestamp is stamped with the
// current time so callers can omit it.
func (r *Recorder) Record(event domain.ShareEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
}

// Summary rolls the buffer up. The most popular platform is the one with
// the highest count; on ties the platform recorded first wins, so the
// answer never depends on map iteration order.
func (r *Recorder) Summary() Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byPlatform := make(map[string]int)
	var order []string
	successes := 0

	for _, e := range r.events {
		if _, seen := byPlatform[e.Platform]; !seen {
			order = append(order, e.Platform)
		}
		byPlatform[e.Platform]++
		if e.Success {
			successes++
		}
	}

	var popular string
	best := 0
	for _, p := range order {
		if byPlatform[p] > best {
			best = byPlatform[p]
			popular = p
		}
	}

	rate := 0.0
	if len(r.events) > 0 {
		rate = float64(successes) / float64(len(r.events)) * 100
	}

	return Summary{
		TotalShares:      len(r.events),
		SharesByPlatform: byPlatform,
		SuccessRate:      rate,
		MostPopular:      popular,
	}
}

// Export returns a copy of the buffer, oldest first.
func (r *Recorder) Export() []domain.ShareEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ShareEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Clear drops every recorded event.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = nil
}
