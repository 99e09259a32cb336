package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const feedThrottleKeyPattern = "scout:throttle:%s"

type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	AcquireFeedSlot(ctx context.Context, feedID string, ttl time.Duration) (bool, error)
	RedisClient() *redis.Client
}

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type client struct {
	redisClient *redis.Client
}

func NewClient(config Config, logger *logrus.Logger) (Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"host": config.Host,
		"port": config.Port,
		"db":   config.DB,
	}).Info("connected to redis")

	return &client{redisClient: redisClient}, nil
}

// NewClientWithRedis wraps an existing redis client, used by tests.
func NewClientWithRedis(redisClient *redis.Client) Client {
	return &client{redisClient: redisClient}
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	return c.redisClient.Get(ctx, key).Result()
}

func (c *client) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return c.redisClient.Set(ctx, key, value, expiration).Err()
}

func (c *client) Delete(ctx context.Context, key string) error {
	return c.redisClient.Del(ctx, key).Err()
}

// AcquireFeedSlot reserves a refresh slot for the feed. It returns false
// while an earlier reservation is still live, so a feed is fetched at
// most once per ttl across the whole process.
func (c *client) AcquireFeedSlot(ctx context.Context, feedID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf(feedThrottleKeyPattern, feedID)
	ok, err := c.redisClient.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("feed throttle: %w", err)
	}
	return ok, nil
}

func (c *client) RedisClient() *redis.Client {
	return c.redisClient
}
