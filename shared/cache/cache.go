package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fixmycondo/infras/otel"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	clearBatchSize        = 100
	Nil                   = redis.Nil
)

// RedisCache stores JSON encoded read models and small counters. Durations are in seconds.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, pattern string) error
	Increment(ctx context.Context, key string, window int) (int64, error)
	Claim(ctx context.Context, key string, duration int) (bool, error)
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{
		client: client,
		otel:   ot,
	}
}

// Clear removes every key matching pattern, scanning and unlinking in batches.
func (cache *redisCache) Clear(ctx context.Context, pattern string) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Clear")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(otelCacheKeyAttribute, pattern)

	batch := make([]string, 0, clearBatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}

		if err := cache.client.Unlink(ctx, batch...).Err(); err != nil {
			log.Error().Err(err).Str("pattern", pattern).Msg("failed to unlink cache keys")

			return fmt.Errorf("failed to delete cache value: %w", err)
		}

		batch = batch[:0]

		return nil
	}

	iter := cache.client.Scan(ctx, 0, pattern, clearBatchSize).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())

		if len(batch) == clearBatchSize {
			if err = flush(); err != nil {
				return err
			}
		}
	}

	if err = iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	return flush()
}

func (cache *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(otelCacheKeyAttribute, key)

	if err = cache.client.Del(ctx, key).Err(); err != nil {
		log.Error().Str("key", key).Err(err).Msg("failed to del cache")

		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	return nil
}

// Get decodes the value stored at key into value. A missing key yields an error wrapping Nil.
func (cache *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(otelCacheKeyAttribute, key)

	cacheValue, err := cache.client.Get(ctx, key).Bytes()
	if err != nil {
		return fmt.Errorf("failed to get cache value: %w", err)
	}

	if v, ok := value.(*string); ok {
		*v = string(cacheValue)

		return nil
	}

	if err = json.Unmarshal(cacheValue, value); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal cache")

		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

func (cache *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Save")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(otelCacheKeyAttribute, key)

	var payload []byte

	switch v := value.(type) {
	case string:
		payload = []byte(v)
	default:
		payload, err = json.Marshal(v)
		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to marshal cache")

			return fmt.Errorf("failed to marshal cache value: %w", err)
		}
	}

	err = cache.client.Set(ctx, key, payload, time.Second*time.Duration(duration)).Err()
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set cache")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	log.Debug().Str("key", key).Msg("cache saved")

	return nil
}

// Increment bumps the counter at key. The first hit starts a window of the given seconds; later
// hits inside it do not extend it.
func (cache *redisCache) Increment(ctx context.Context, key string, window int) (count int64, err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Increment")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(otelCacheKeyAttribute, key)

	var incr *redis.IntCmd

	_, err = cache.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, time.Second*time.Duration(window))

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to increment cache counter")

		return 0, fmt.Errorf("failed to increment cache value: %w", err)
	}

	return incr.Val(), nil
}

// Claim marks key for duration seconds and reports whether this call was the first to do so.
func (cache *redisCache) Claim(ctx context.Context, key string, duration int) (claimed bool, err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Claim")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(otelCacheKeyAttribute, key)

	claimed, err = cache.client.SetNX(ctx, key, 1, time.Second*time.Duration(duration)).Result()
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to claim cache key")

		return false, fmt.Errorf("failed to claim cache key: %w", err)
	}

	return claimed, nil
}
