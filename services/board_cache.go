package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yeremiapane/rental-backoffice/cleaning"
)

const boardCacheKey = "cleaning:board"

// BoardCache keeps the last board outside the process.
type BoardCache interface {
	Save(ctx context.Context, board cleaning.Board) error
	Load(ctx context.Context) (cleaning.Board, bool, error)
}

type RedisBoardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBoardCache(client *redis.Client, ttl time.Duration) *RedisBoardCache {
	return &RedisBoardCache{client: client, ttl: ttl}
}

func (c *RedisBoardCache) Save(ctx context.Context, board cleaning.Board) error {
	raw, err := json.Marshal(board)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, boardCacheKey, raw, c.ttl).Err()
}

// Load reports ok=false when nothing is cached or the entry expired.
func (c *RedisBoardCache) Load(ctx context.Context) (cleaning.Board, bool, error) {
	var board cleaning.Board
	raw, err := c.client.Get(ctx, boardCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return board, false, nil
	}
	if err != nil {
		return board, false, err
	}
	if err := json.Unmarshal(raw, &board); err != nil {
		return board, false, err
	}
	return board, true, nil
}
