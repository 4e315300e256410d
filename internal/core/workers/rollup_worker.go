package workers

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/domain"
)

type ItemRepository interface {
	GetByID(ctx context.Context, id string) (*domain.TrackableItem, error)
	Update(ctx context.Context, item *domain.TrackableItem) error
}

type SessionRepository interface {
	ListByItemID(ctx context.Context, itemID string, from, to time.Time) ([]*domain.ProgressSession, error)
}

type RollupJob struct {
	ItemID string
}

// RollupWorker recomputes an item's accumulated progress from its sessions
// after session writes, so the stored item never drifts from its history.
type RollupWorker struct {
	itemRepo    ItemRepository
	sessionRepo SessionRepository
	jobs        chan RollupJob
}

func NewRollupWorker(itemRepo ItemRepository, sessionRepo SessionRepository) *RollupWorker {
	return &RollupWorker{
		itemRepo:    itemRepo,
		sessionRepo: sessionRepo,
		jobs:        make(chan RollupJob, 100),
	}
}

func (w *RollupWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Rollup Worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Rollup Worker shutting down...")
				return
			}
		}
	}()
}

func (w *RollupWorker) Enqueue(itemID string) {
	select {
	case w.jobs <- RollupJob{ItemID: itemID}:
	default:
		log.Printf("Rollup Worker queue full! Dropping job for item %s", itemID)
	}
}

func (w *RollupWorker) processJob(ctx context.Context, job RollupJob) {
	item, err := w.itemRepo.GetByID(ctx, job.ItemID)
	if err != nil {
		log.Printf("Worker Error fetching item %s: %v", job.ItemID, err)
		return
	}

	if item.IsCompleted() {
		// Completed items keep their frozen progress.
		return
	}

	sessions, err := w.sessionRepo.ListByItemID(ctx, job.ItemID, time.Time{}, time.Now().UTC())
	if err != nil {
		log.Printf("Worker Error fetching sessions for %s: %v", job.ItemID, err)
		return
	}

	total := sumSessionValues(sessions)

	if item.Progress != total {
		item.Progress = total
		item.UpdatedAt = time.Now().UTC()
		if err := w.itemRepo.Update(ctx, item); err != nil {
			log.Printf("Worker Failed to update progress for %s: %v", job.ItemID, err)
		} else {
			log.Printf("Progress rolled up for %s: %.1f", item.Title, total)
		}
	}
}

func sumSessionValues(sessions []*domain.ProgressSession) float64 {
	var total float64
	for _, s := range sessions {
		if s == nil {
			continue
		}
		total += math.Max(0, s.Value)
	}
	return total
}
