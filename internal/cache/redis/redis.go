package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/scheduler-api/internal/cache"
	"github.com/jwalitptl/scheduler-api/internal/model"
)

type Config struct {
	URL          string
	TTL          time.Duration
	PoolSize     int
	MinIdleConns int
}

// Cache is the production SlotCache backed by redis. Week payloads are JSON
// values; the set of live week keys per provider is tracked in a companion
// set so AllWeeksForProvider never needs a KEYS scan.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zerolog.Logger
}

func New(config Config, logger *zerolog.Logger) (*Cache, error) {
	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.PoolSize = config.PoolSize
	opts.MinIdleConns = config.MinIdleConns

	client := redis.NewClient(opts)

	// Test connection
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := config.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &Cache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}, nil
}

// Client exposes the underlying connection for readiness probes.
func (c *Cache) Client() *redis.Client {
	return c.client
}

func weekSetKey(key cache.WeekKey) string {
	return fmt.Sprintf("slots:%s:weeks", key.ProviderID)
}

func (c *Cache) Get(ctx context.Context, key cache.WeekKey) (*model.RawWeeklySlotSet, bool, error) {
	payload, err := c.client.Get(ctx, key.String()).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached week: %w", err)
	}

	var set model.RawWeeklySlotSet
	if err := json.Unmarshal(payload, &set); err != nil {
		// A corrupt entry is dropped and treated as a miss so the caller
		// falls back to the system of record.
		c.logger.Warn().Err(err).Str("key", key.String()).Msg("dropping corrupt cache entry")
		c.client.Del(ctx, key.String())
		return nil, false, nil
	}
	return &set, true, nil
}

func (c *Cache) Set(ctx context.Context, key cache.WeekKey, set *model.RawWeeklySlotSet) error {
	payload, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to marshal weekly slot set: %w", err)
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key.String(), payload, c.ttl)
	pipe.SAdd(ctx, weekSetKey(key), key.String())
	pipe.Expire(ctx, weekSetKey(key), 2*c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache weekly slot set: %w", err)
	}
	return nil
}

func (c *Cache) Invalidate(ctx context.Context, inv cache.Invalidation) error {
	switch inv.Scope {
	case cache.ScopeThisWeek:
		key := cache.WeekKey{ProviderID: inv.ProviderID, WeekStart: inv.WeekStart}
		pipe := c.client.TxPipeline()
		pipe.Del(ctx, key.String())
		pipe.SRem(ctx, weekSetKey(key), key.String())
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("failed to invalidate week %s: %w", key, err)
		}
		return nil

	case cache.ScopeAllWeeksForProvider:
		setKey := fmt.Sprintf("slots:%s:weeks", inv.ProviderID)
		keys, err := c.client.SMembers(ctx, setKey).Result()
		if err != nil {
			return fmt.Errorf("failed to list cached weeks for provider %s: %w", inv.ProviderID, err)
		}
		keys = append(keys, setKey)
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to invalidate provider %s weeks: %w", inv.ProviderID, err)
		}
		return nil

	default:
		return fmt.Errorf("unknown invalidation scope %q", inv.Scope)
	}
}

func (c *Cache) Close() error {
	return c.client.Close()
}
