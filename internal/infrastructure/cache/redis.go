package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/events"
	"github.com/RishabhMalviya75/ZenithTrack/pkg/config"
	"github.com/RishabhMalviya75/ZenithTrack/pkg/logger"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// keyPrefix namespaces every key so the instance can share a Redis with
	// other deployments.
	keyPrefix = "zenith:"

	// analyticsChannel carries AnalyticsEvent notifications between instances.
	analyticsChannel = "analytics:events"
)

// Default TTLs per cached entity. Analytics responses are never cached; KPI
// reads recompute from storage so a completed task shows up immediately.
var defaultTTLs = map[string]time.Duration{
	"task":        5 * time.Minute,
	"schedule":    10 * time.Minute,
	"consistency": 10 * time.Minute,
	"workspace":   15 * time.Minute,
	"user":        30 * time.Minute,
}

// Metrics tracks cache effectiveness counters.
type Metrics struct {
	Hits   uint64
	Misses uint64
	Errors uint64
}

// RedisClient wraps go-redis with key prefixing, per-entity TTLs and
// health monitoring.
type RedisClient struct {
	client  *redis.Client
	log     *logger.Logger
	ttls    sync.Map
	healthy atomic.Bool
	metrics Metrics
}

func NewRedisClient(cfg *config.Config, log *logger.Logger) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	rc := &RedisClient{
		client: client,
		log:    log,
	}
	rc.healthy.Store(true)

	for entity, ttl := range defaultTTLs {
		rc.ttls.Store(entity, ttl)
	}

	go rc.healthLoop()

	return rc, nil
}

// Client exposes the underlying go-redis client for components that need
// direct access, such as the rate limiter.
func (rc *RedisClient) Client() *redis.Client {
	return rc.client
}

// IsHealthy reports the result of the most recent health probe.
func (rc *RedisClient) IsHealthy() bool {
	return rc.healthy.Load()
}

// GetMetrics returns a snapshot of the cache counters.
func (rc *RedisClient) GetMetrics() Metrics {
	return Metrics{
		Hits:   atomic.LoadUint64(&rc.metrics.Hits),
		Misses: atomic.LoadUint64(&rc.metrics.Misses),
		Errors: atomic.LoadUint64(&rc.metrics.Errors),
	}
}

func (rc *RedisClient) healthLoop() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rc.client.Ping(ctx).Err()
		cancel()

		wasHealthy := rc.healthy.Load()
		rc.healthy.Store(err == nil)

		if err != nil && wasHealthy {
			rc.log.Warn("redis health check failed", zap.Error(err))
		} else if err == nil && !wasHealthy {
			rc.log.Info("redis connection recovered")
		}
	}
}

// TTLFor returns the configured TTL for an entity type, falling back to
// five minutes for unknown entities.
func (rc *RedisClient) TTLFor(entity string) time.Duration {
	if v, ok := rc.ttls.Load(entity); ok {
		return v.(time.Duration)
	}
	return 5 * time.Minute
}

// SetTTL overrides the TTL used for an entity type.
func (rc *RedisClient) SetTTL(entity string, ttl time.Duration) {
	rc.ttls.Store(entity, ttl)
}

func (rc *RedisClient) prefixed(key string) string {
	return keyPrefix + key
}

// Get retrieves and unmarshals a cached value into dest. Returns redis.Nil
// on a miss.
func (rc *RedisClient) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := rc.client.Get(ctx, rc.prefixed(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			atomic.AddUint64(&rc.metrics.Misses, 1)
		} else {
			atomic.AddUint64(&rc.metrics.Errors, 1)
		}
		return err
	}

	atomic.AddUint64(&rc.metrics.Hits, 1)
	return json.Unmarshal(data, dest)
}

// GetRaw retrieves a cached value without unmarshaling.
func (rc *RedisClient) GetRaw(ctx context.Context, key string) ([]byte, error) {
	data, err := rc.client.Get(ctx, rc.prefixed(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			atomic.AddUint64(&rc.metrics.Misses, 1)
		} else {
			atomic.AddUint64(&rc.metrics.Errors, 1)
		}
		return nil, err
	}

	atomic.AddUint64(&rc.metrics.Hits, 1)
	return data, nil
}

// Set marshals and stores a value with the given TTL.
func (rc *RedisClient) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err := rc.client.Set(ctx, rc.prefixed(key), data, ttl).Err(); err != nil {
		atomic.AddUint64(&rc.metrics.Errors, 1)
		return err
	}
	return nil
}

// SetRaw stores pre-marshaled bytes with the given TTL.
func (rc *RedisClient) SetRaw(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := rc.client.Set(ctx, rc.prefixed(key), data, ttl).Err(); err != nil {
		atomic.AddUint64(&rc.metrics.Errors, 1)
		return err
	}
	return nil
}

// Delete removes one or more keys.
func (rc *RedisClient) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = rc.prefixed(k)
	}
	return rc.client.Del(ctx, prefixed...).Err()
}

// ClearByPattern removes all keys matching the pattern using SCAN, so large
// keyspaces are not blocked by a KEYS call.
func (rc *RedisClient) ClearByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	fullPattern := rc.prefixed(pattern)

	for {
		keys, next, err := rc.client.Scan(ctx, cursor, fullPattern, 100).Result()
		if err != nil {
			atomic.AddUint64(&rc.metrics.Errors, 1)
			return fmt.Errorf("scan failed for pattern %s: %w", pattern, err)
		}

		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				atomic.AddUint64(&rc.metrics.Errors, 1)
				return fmt.Errorf("delete failed for pattern %s: %w", pattern, err)
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return nil
}

// InvalidateUserData clears every cached response belonging to a user for
// the given entity type.
func (rc *RedisClient) InvalidateUserData(ctx context.Context, entity string, userID uuid.UUID) error {
	return rc.ClearByPattern(ctx, fmt.Sprintf("%s:%s:*", entity, userID))
}

// PublishAnalyticsEvent broadcasts an event so other instances can drop
// stale cached responses for the affected user.
func (rc *RedisClient) PublishAnalyticsEvent(ctx context.Context, event events.AnalyticsEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal analytics event: %w", err)
	}

	return rc.client.Publish(ctx, analyticsChannel, data).Err()
}

// SubscribeToAnalyticsEvents delivers published analytics events to handler
// until the context is cancelled. Malformed payloads are logged and skipped.
func (rc *RedisClient) SubscribeToAnalyticsEvents(ctx context.Context, handler func(events.AnalyticsEvent)) error {
	pubsub := rc.client.Subscribe(ctx, analyticsChannel)

	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return fmt.Errorf("failed to subscribe to %s: %w", analyticsChannel, err)
	}

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var event events.AnalyticsEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					rc.log.Warn("dropping malformed analytics event", zap.Error(err))
					continue
				}

				handler(event)
			}
		}
	}()

	return nil
}

// Close shuts down the underlying connection pool.
func (rc *RedisClient) Close() error {
	return rc.client.Close()
}
