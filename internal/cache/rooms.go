package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hotelier/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const genKey = "hotelier:rooms:gen"

// RoomCache caches room search results in Redis with a TTL. A nil
// *RoomCache is valid and behaves as a disabled cache, so callers never
// need to branch on whether Redis is configured.
//
// Invalidation bumps a generation counter instead of scanning keys: stale
// entries stop being addressed and expire on their own.
type RoomCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zerolog.Logger
}

func New(client *redis.Client, ttl time.Duration, logger *zerolog.Logger) *RoomCache {
	return &RoomCache{client: client, ttl: ttl, logger: logger}
}

// GetSearch returns the cached result for the filter, if present.
func (c *RoomCache) GetSearch(ctx context.Context, filter models.RoomFilter) ([]models.Room, bool) {
	if c == nil {
		return nil, false
	}

	key, err := c.searchKey(ctx, filter)
	if err != nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug().Err(err).Msg("Room cache read failed")
		}
		return nil, false
	}

	var rooms []models.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		c.logger.Debug().Err(err).Msg("Room cache entry corrupt")
		return nil, false
	}
	return rooms, true
}

// SetSearch stores a search result under the current generation.
func (c *RoomCache) SetSearch(ctx context.Context, filter models.RoomFilter, rooms []models.Room) {
	if c == nil {
		return
	}

	key, err := c.searchKey(ctx, filter)
	if err != nil {
		return
	}

	data, err := json.Marshal(rooms)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Debug().Err(err).Msg("Room cache write failed")
	}
}

// Invalidate discards all cached search results.
func (c *RoomCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.Incr(ctx, genKey).Err(); err != nil {
		c.logger.Debug().Err(err).Msg("Room cache invalidation failed")
	}
}

func (c *RoomCache) searchKey(ctx context.Context, filter models.RoomFilter) (string, error) {
	gen, err := c.client.Get(ctx, genKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}

	f, err := json.Marshal(filter)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("hotelier:rooms:search:%d:%s", gen, f), nil
}
