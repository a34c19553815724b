package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"time"

	"carwash-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const serviceCachePrefix = "catalog:services"

type cachedServiceRepository struct {
	inner  ServiceRepository
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewCachedServiceRepository caches catalog listings in Redis. A nil client
// returns inner unchanged. Cache failures fall through to inner.
func NewCachedServiceRepository(inner ServiceRepository, client *redis.Client, ttl time.Duration, log *zap.Logger) ServiceRepository {
	if client == nil || ttl <= 0 {
		return inner
	}
	return &cachedServiceRepository{
		inner:  inner,
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("repository", "service_cache")),
	}
}

// FindByID is not cached; checkout and cart reads need the live price and active flag.
func (r *cachedServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	return r.inner.FindByID(ctx, id)
}

func (r *cachedServiceRepository) FindAll(ctx context.Context, filter entity.ServiceFilter) ([]*entity.Service, error) {
	key := serviceFilterKey(filter)

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var services []*entity.Service
		if err := json.Unmarshal(raw, &services); err == nil {
			return services, nil
		}
		r.log.Warn("Discarding undecodable cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		r.log.Warn("Catalog cache read failed", zap.Error(err), zap.String("key", key))
	}

	services, err := r.inner.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(services)
	if err != nil {
		r.log.Warn("Failed to encode catalog cache entry", zap.Error(err))
		return services, nil
	}
	if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		r.log.Warn("Catalog cache write failed", zap.Error(err), zap.String("key", key))
	}

	return services, nil
}

// serviceFilterKey renders the filter with escaped values in a fixed key order
// so equal filters share a key and distinct filters never collide.
func serviceFilterKey(filter entity.ServiceFilter) string {
	values := url.Values{}

	if filter.Category != nil {
		values.Set("category", *filter.Category)
	}
	if filter.CarType != nil {
		values.Set("car_type", string(*filter.CarType))
	}
	if filter.MinPrice != nil {
		values.Set("min", strconv.FormatInt(*filter.MinPrice, 10))
	}
	if filter.MaxPrice != nil {
		values.Set("max", strconv.FormatInt(*filter.MaxPrice, 10))
	}

	if len(values) == 0 {
		return serviceCachePrefix
	}
	return serviceCachePrefix + "?" + values.Encode()
}
