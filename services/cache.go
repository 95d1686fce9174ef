package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrCacheMiss = errors.New("cache miss")

const (
	pingAttempts = 5
	pingBackoff  = 2 * time.Second
)

// CacheService wraps Redis for response caching and event pub/sub. A
// CacheService without a client is valid: reads miss and writes are dropped.
type CacheService struct {
	client *redis.Client
	log    *zap.Logger
}

// NewCacheService connects to redisURL. An empty URL returns a disabled
// service. When Redis never answers, the disabled service is returned along
// with the error so callers can decide whether to continue without it.
func NewCacheService(redisURL string, log *zap.Logger) (*CacheService, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if redisURL == "" {
		return &CacheService{log: log}, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return &CacheService{log: log}, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	var lastErr error
	for i := 0; i < pingAttempts; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		lastErr = client.Ping(ctx).Err()
		cancel()
		if lastErr == nil {
			log.Info("redis connected", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
			return &CacheService{client: client, log: log}, nil
		}
		log.Warn("redis ping failed",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", pingAttempts),
			zap.Error(lastErr))
		time.Sleep(pingBackoff)
	}
	client.Close()

	return &CacheService{log: log}, fmt.Errorf("redis ping failed after %d attempts: %w", pingAttempts, lastErr)
}

func (s *CacheService) Available() bool {
	return s != nil && s.client != nil
}

// Get decodes the JSON value stored at key into dest. It returns ErrCacheMiss
// when the key is absent or the cache is disabled.
func (s *CacheService) Get(ctx context.Context, key string, dest any) error {
	if !s.Available() {
		return ErrCacheMiss
	}
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		cacheLookups.WithLabelValues("miss").Inc()
		return ErrCacheMiss
	}
	if err != nil {
		cacheLookups.WithLabelValues("error").Inc()
		return err
	}
	cacheLookups.WithLabelValues("hit").Inc()
	return json.Unmarshal([]byte(val), dest)
}

func (s *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !s.Available() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Publish(ctx context.Context, channel string, message any) error {
	if !s.Available() {
		return nil
	}
	data, err := json.Marshal(message)
	if err != nil {
		eventsFailed.Inc()
		return err
	}
	if err := s.client.Publish(ctx, channel, data).Err(); err != nil {
		eventsFailed.Inc()
		s.log.Warn("redis publish failed", zap.String("channel", channel), zap.Error(err))
		return err
	}
	eventsPublished.Inc()
	return nil
}

func (s *CacheService) Subscribe(ctx context.Context, channel string) *redis.PubSub {
	if !s.Available() {
		return nil
	}
	return s.client.Subscribe(ctx, channel)
}

func (s *CacheService) Close() error {
	if !s.Available() {
		return nil
	}
	return s.client.Close()
}
