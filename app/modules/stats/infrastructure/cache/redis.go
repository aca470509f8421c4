package statscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	statsservice "github.com/Black-And-White-Club/hoopstats/app/modules/stats/application"
	"github.com/redis/go-redis/v9"
)

var _ statsservice.RankingCache = (*RedisCache)(nil)

const keyPrefix = "hoopstats:rankings:league:"

// RedisCache stores each league's rankings in one Redis hash so a league can be dropped with a single DEL.
// A per-league generation counter, bumped on every invalidation, guards writes of rankings computed
// before the league changed.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to redisURL and verifies the connection.
func NewRedisCache(ctx context.Context, redisURL string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewRedisCacheFromClient(client, ttl), nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// HealthCheck pings Redis to verify connection
func (c *RedisCache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// LeagueKey is the hash holding every cached ranking of a league.
func LeagueKey(leagueID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, leagueID)
}

// GenerationKey is the counter bumped each time the league's rankings are invalidated.
func GenerationKey(leagueID int64) string {
	return LeagueKey(leagueID) + ":gen"
}

func (c *RedisCache) Generation(ctx context.Context, leagueID int64) (int64, error) {
	return generation(ctx, c.client, leagueID)
}

// getter is satisfied by both *redis.Client and the *redis.Tx of a WATCH.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func generation(ctx context.Context, cmd getter, leagueID int64) (int64, error) {
	gen, err := cmd.Get(ctx, GenerationKey(leagueID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisCache) Get(ctx context.Context, leagueID int64, field string) ([]byte, bool, error) {
	raw, err := c.client.HGet(ctx, LeagueKey(leagueID), field).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

// Set stores value only while the league is still at gen. A write that loses to a concurrent
// invalidation is dropped without error.
func (c *RedisCache) Set(ctx context.Context, leagueID, gen int64, field string, value []byte) error {
	key := LeagueKey(leagueID)
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := generation(ctx, tx, leagueID)
		if err != nil {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, field, value)
			if c.ttl > 0 {
				pipe.Expire(ctx, key, c.ttl)
			}
			return nil
		})
		return err
	}, GenerationKey(leagueID))
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *RedisCache) Invalidate(ctx context.Context, leagueID int64) error {
	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, GenerationKey(leagueID))
	pipe.Del(ctx, LeagueKey(leagueID))
	_, err := pipe.Exec(ctx)
	return err
}
