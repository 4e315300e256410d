package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

var _ domain.ItemRepository = (*CachedItemRepository)(nil)

type CachedItemRepository struct {
	next  domain.ItemRepository
	cache *redis.Client
}

func NewCachedItemRepository(next domain.ItemRepository, cache *redis.Client) *CachedItemRepository {
	return &CachedItemRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedItemRepository) cacheKey(userID string) string {
	return fmt.Sprintf("items:%s", userID)
}

func (r *CachedItemRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate for user %s: %v", userID, err)
	}
}

func (r *CachedItemRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.TrackableItem, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var items []*domain.TrackableItem
		if err := json.Unmarshal([]byte(val), &items); err == nil {
			return items, nil
		}

		log.Printf("[CACHE] Corrupted data for user %s, cleaning up key", userID)
		r.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	items, err := r.next.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(items); err == nil {
		if setErr := r.cache.Set(ctx, key, data, 30*time.Minute).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return items, nil
}

func (r *CachedItemRepository) GetByID(ctx context.Context, id string) (*domain.TrackableItem, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedItemRepository) Create(ctx context.Context, item *domain.TrackableItem) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.UserID)
	return nil
}

func (r *CachedItemRepository) Update(ctx context.Context, item *domain.TrackableItem) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.UserID)
	return nil
}

func (r *CachedItemRepository) Delete(ctx context.Context, id string) error {
	item, err := r.next.GetByID(ctx, id)
	if err == nil && item != nil {
		defer r.invalidate(ctx, item.UserID)
	}

	return r.next.Delete(ctx, id)
}
