package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ivr/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const menuCacheKey = "ivr:menu:all"

// CacheAsideMenuRepository wraps a MenuRepository with a Redis copy of the full menu.
// Reads fill the cache on miss; every write drops it. Redis failures fall through to the store.
type CacheAsideMenuRepository struct {
	MenuRepository
	client *redis.Client
	ttl    time.Duration
}

// NewCacheAsideMenuRepository creates a cached view over repo.
func NewCacheAsideMenuRepository(repo MenuRepository, client *redis.Client, ttl time.Duration) *CacheAsideMenuRepository {
	return &CacheAsideMenuRepository{MenuRepository: repo, client: client, ttl: ttl}
}

// GetAll serves the menu from Redis when present.
func (r *CacheAsideMenuRepository) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	raw, err := r.client.Get(ctx, menuCacheKey).Bytes()
	switch {
	case err == nil:
		var items []models.MenuItem
		jsonErr := json.Unmarshal(raw, &items)
		if jsonErr == nil {
			return items, nil
		}
		log.Warn().Err(jsonErr).Msg("discarding unreadable menu cache entry")
	case !errors.Is(err, redis.Nil):
		log.Warn().Err(err).Msg("menu cache read failed")
	}

	items, err := r.MenuRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(items); err == nil {
		if err := r.client.Set(ctx, menuCacheKey, data, r.ttl).Err(); err != nil {
			log.Warn().Err(err).Msg("menu cache write failed")
		}
	}
	return items, nil
}

// Create stores the item and invalidates the cached menu.
func (r *CacheAsideMenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	if err := r.MenuRepository.Create(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

// Update applies the update and invalidates the cached menu.
func (r *CacheAsideMenuRepository) Update(ctx context.Context, id string, update models.MenuItemUpdate) (*models.MenuItem, error) {
	item, err := r.MenuRepository.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return item, nil
}

// Delete removes the item and invalidates the cached menu.
func (r *CacheAsideMenuRepository) Delete(ctx context.Context, id string) error {
	if err := r.MenuRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CacheAsideMenuRepository) invalidate(ctx context.Context) {
	if err := r.client.Del(ctx, menuCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("menu cache invalidation failed")
	}
}
