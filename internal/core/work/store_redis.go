// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package work

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/ranoberead/internal/platform/constants"
	"github.com/taibuivan/ranoberead/internal/platform/ctxutil"
	"github.com/taibuivan/ranoberead/internal/platform/metrics"
)

const (
	projectionList   = "list"
	projectionDetail = "detail"
)

// redisCache implements [Cache] as JSON values with a fixed TTL.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache constructs a Redis backed projection cache.
func NewRedisCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) Cache {
	return &redisCache{client: client, ttl: ttl, logger: logger}
}

// errGenerationMoved aborts a projection write that raced an invalidation.
var errGenerationMoved = errors.New("projection generation moved")

func detailKey(id int64) string {
	return constants.RedisPrefixWorkDetail + strconv.FormatInt(id, 10)
}

func detailGenerationKey(id int64) string {
	return constants.RedisPrefixWorkDetailGeneration + strconv.FormatInt(id, 10)
}

func (cache *redisCache) GetList(context context.Context) ([]ListItem, bool) {
	var items []ListItem
	if !cache.get(context, projectionList, constants.RedisPrefixWorkList, &items) {
		return nil, false
	}
	return items, true
}

func (cache *redisCache) ListGeneration(context context.Context) int64 {
	return cache.generation(context, constants.RedisKeyWorkListGeneration)
}

func (cache *redisCache) SetList(context context.Context, items []ListItem, generation int64) {
	cache.set(context, constants.RedisPrefixWorkList, constants.RedisKeyWorkListGeneration, generation, items)
}

func (cache *redisCache) GetDetail(context context.Context, id int64) (*Detail, bool) {
	var detail Detail
	if !cache.get(context, projectionDetail, detailKey(id), &detail) {
		return nil, false
	}
	return &detail, true
}

func (cache *redisCache) DetailGeneration(context context.Context, id int64) int64 {
	return cache.generation(context, detailGenerationKey(id))
}

func (cache *redisCache) SetDetail(context context.Context, detail *Detail, generation int64) {
	cache.set(context, detailKey(detail.ID), detailGenerationKey(detail.ID), generation, detail)
}

func (cache *redisCache) InvalidateWork(context context.Context, id int64) {
	_, err := cache.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.Incr(context, constants.RedisKeyWorkListGeneration)
		pipe.Incr(context, detailGenerationKey(id))
		pipe.Del(context, constants.RedisPrefixWorkList, detailKey(id))
		return nil
	})
	if err != nil {
		ctxutil.LoggerOr(context, cache.logger).Warn("work_cache_invalidate_failed",
			slog.Int64("work_id", id),
			slog.Any("error", err),
		)
	}
}

// generation reads a counter; a missing key is generation zero and a failed
// read is -1 so the following write is skipped.
func (cache *redisCache) generation(context context.Context, key string) int64 {
	value, err := cache.client.Get(context, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0
	}
	if err != nil {
		ctxutil.LoggerOr(context, cache.logger).Warn("work_cache_generation_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return -1
	}
	return value
}

// get decodes key into target and records the lookup outcome.
func (cache *redisCache) get(context context.Context, projection, key string, target any) bool {
	payload, err := cache.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheLookupsTotal.WithLabelValues(projection, metrics.ResultMiss).Inc()
			return false
		}
		metrics.CacheLookupsTotal.WithLabelValues(projection, metrics.ResultError).Inc()
		ctxutil.LoggerOr(context, cache.logger).Warn("work_cache_read_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return false
	}

	if err := json.Unmarshal(payload, target); err != nil {
		metrics.CacheLookupsTotal.WithLabelValues(projection, metrics.ResultError).Inc()
		ctxutil.LoggerOr(context, cache.logger).Warn("work_cache_decode_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return false
	}

	metrics.CacheLookupsTotal.WithLabelValues(projection, metrics.ResultHit).Inc()
	return true
}

// set stores value under key only while generationKey still holds generation.
func (cache *redisCache) set(context context.Context, key, generationKey string, generation int64, value any) {
	if generation < 0 {
		return
	}

	payload, err := json.Marshal(value)
	if err == nil {
		err = cache.client.Watch(context, func(tx *redis.Tx) error {
			current, err := tx.Get(context, generationKey).Int64()
			if errors.Is(err, redis.Nil) {
				current, err = 0, nil
			}
			if err != nil {
				return err
			}
			if current != generation {
				return errGenerationMoved
			}

			_, err = tx.TxPipelined(context, func(pipe redis.Pipeliner) error {
				pipe.Set(context, key, payload, cache.ttl)
				return nil
			})
			return err
		}, generationKey)
	}

	switch {
	case err == nil:
	case errors.Is(err, errGenerationMoved), errors.Is(err, redis.TxFailedErr):
		ctxutil.LoggerOr(context, cache.logger).Debug("work_cache_write_skipped",
			slog.String("key", key),
			slog.Int64("generation", generation),
		)
	default:
		ctxutil.LoggerOr(context, cache.logger).Warn("work_cache_write_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}
