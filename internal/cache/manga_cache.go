package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mangareader/internal/microservices/http-api/dto"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("cache miss")

// MangaCache stores rendered manga detail payloads.
//
// Every Invalidate bumps a per-manga version. Readers take the version
// before loading from the database and pass it to Set, which stores nothing
// once the version has moved on.
type MangaCache interface {
	Get(ctx context.Context, mangaID int64) (*dto.MangaDetailResponse, error)
	Version(ctx context.Context, mangaID int64) (int64, error)
	Set(ctx context.Context, detail *dto.MangaDetailResponse, version int64) error
	Invalidate(ctx context.Context, mangaID int64) error
}

func detailKey(mangaID int64) string {
	return fmt.Sprintf("manga:detail:%d", mangaID)
}

func versionKey(mangaID int64) string {
	return fmt.Sprintf("manga:detail:%d:version", mangaID)
}

type RedisMangaCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient builds a client from a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

func NewRedisMangaCache(client *redis.Client, ttl time.Duration) *RedisMangaCache {
	return &RedisMangaCache{client: client, ttl: ttl}
}

func (c *RedisMangaCache) Get(ctx context.Context, mangaID int64) (*dto.MangaDetailResponse, error) {
	raw, err := c.client.Get(ctx, detailKey(mangaID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var detail dto.MangaDetailResponse
	if err := json.Unmarshal(raw, &detail); err != nil {
		// a payload we cannot read is as good as missing
		_ = c.client.Del(ctx, detailKey(mangaID)).Err()
		return nil, ErrMiss
	}
	return &detail, nil
}

func (c *RedisMangaCache) Version(ctx context.Context, mangaID int64) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(mangaID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get version: %w", err)
	}
	return v, nil
}

// Set stores the payload only while the manga is still at version.
// A stale write is dropped silently.
func (c *RedisMangaCache) Set(ctx context.Context, detail *dto.MangaDetailResponse, version int64) error {
	raw, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("encode manga detail: %w", err)
	}

	vkey := versionKey(detail.ID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vkey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, detailKey(detail.ID), raw, c.ttl)
			return nil
		})
		return err
	}, vkey)
	if err != nil && !errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisMangaCache) Invalidate(ctx context.Context, mangaID int64) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(mangaID))
		pipe.Del(ctx, detailKey(mangaID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate: %w", err)
	}
	return nil
}

// NopMangaCache is used when Redis is not configured; every Get misses.
type NopMangaCache struct{}

func (NopMangaCache) Get(context.Context, int64) (*dto.MangaDetailResponse, error) {
	return nil, ErrMiss
}

func (NopMangaCache) Version(context.Context, int64) (int64, error) { return 0, nil }

func (NopMangaCache) Set(context.Context, *dto.MangaDetailResponse, int64) error { return nil }

func (NopMangaCache) Invalidate(context.Context, int64) error { return nil }
