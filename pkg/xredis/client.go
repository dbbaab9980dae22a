package xredis

import (
	"context"
	"time"

	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
	"github.com/redis/go-redis/v9"
)

type Client interface {
	Incr(ctx context.Context, key string) error
	Get(ctx context.Context, key string) (int64, error)
	Del(ctx context.Context, keys ...string) error
}

type client struct {
	redisClient *redis.Client
}

func NewClient(ctx context.Context) (*client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:            xcontext.Configs(ctx).Redis.Addr,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		PoolFIFO:        false,
		PoolSize:        5,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{redisClient: redisClient}, nil
}

func (c *client) Incr(ctx context.Context, key string) error {
	return c.redisClient.Incr(ctx, key).Err()
}

func (c *client) Get(ctx context.Context, key string) (int64, error) {
	n, err := c.redisClient.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}

	return n, err
}

func (c *client) Del(ctx context.Context, keys ...string) error {
	err := c.redisClient.Del(ctx, keys...).Err()
	if err == nil || err == redis.Nil {
		return nil
	}

	return err
}
