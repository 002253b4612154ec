package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/careerfair/jobfair-api/internal/config"
)

// NewRedisClient builds a client from conf and pings it. URL takes precedence
// over Addr when both are set.
func NewRedisClient(ctx context.Context, conf *config.RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	}
	if conf.URL != "" {
		parsed, err := redis.ParseURL(conf.URL)
		if err != nil {
			return nil, fmt.Errorf("redis.ParseURL -> %w", err)
		}
		opts = parsed
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("client.Ping -> %w", err)
	}

	return client, nil
}
