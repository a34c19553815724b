package database

import (
	"context"
	"fmt"
	"time"

	"carwash-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects the catalog cache. An empty address disables caching
// and returns a nil client.
func InitRedis(cfg utils.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}

	return client, nil
}
