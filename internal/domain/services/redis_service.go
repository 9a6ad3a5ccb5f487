package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"flatmoney-service/internal/infrastructure/config"
)

// InterfaceRedisService defines the Redis service interface
type InterfaceRedisService interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	now    func() time.Time
}

// NewRedisClient creates a Redis client from config
func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// NewRedisService creates a new Redis service
func NewRedisService(client *redis.Client) InterfaceRedisService {
	return &RedisService{
		Client: client,
		now:    time.Now,
	}
}

// 1 Allow counts one hit in the current fixed window and reports whether it is within limit.
// Every instance sharing the Redis database sees the same counter.
func (s *RedisService) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if window <= 0 {
		window = time.Second
	}
	slot := s.now().UnixNano() / int64(window)
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, slot)

	var incr *redis.IntCmd
	_, err := s.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, window)
		return nil
	})
	if err != nil {
		return false, err
	}
	return incr.Val() <= int64(limit), nil
}

// 2 Ping checks the connection
func (s *RedisService) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

// 3 Close closes the client
func (s *RedisService) Close() error {
	return s.Client.Close()
}
