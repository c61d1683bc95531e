package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dimitrije/frame-nest/internal/config"
	"github.com/dimitrije/frame-nest/internal/models"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "framenest:collection:"

// Redis caches collection records. Collections are immutable once created, so
// entries only expire by TTL.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

func NewFromConfig(cfg config.RedisConfig) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return New(rdb, cfg.TTL)
}

func collectionKey(id int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, id)
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *Redis) Close() {
	if err := r.rdb.Close(); err != nil {
		log.Printf("redis close: %v", err)
	}
}

// GetCollection returns nil without an error on a cache miss.
func (r *Redis) GetCollection(ctx context.Context, id int64) (*models.Collection, error) {
	b, err := r.rdb.Get(ctx, collectionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var c models.Collection
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decode cached collection %d: %w", id, err)
	}
	return &c, nil
}

func (r *Redis) SetCollection(ctx context.Context, c *models.Collection) error {
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode collection %d: %w", c.ID, err)
	}
	if err := r.rdb.Set(ctx, collectionKey(c.ID), b, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
