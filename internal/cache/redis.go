package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

// RedisCache stores search results and flight details. A miss is reported
// as (nil, nil).
type RedisCache struct {
	client     redis.Cmdable
	searchTTL  time.Duration
	detailsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, searchTTL, detailsTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		searchTTL,
		detailsTTL,
	)
}

func NewRedisCacheWithClient(client redis.Cmdable, searchTTL, detailsTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, searchTTL: searchTTL, detailsTTL: detailsTTL}
}

func (c *RedisCache) GetSearch(ctx context.Context, origin, destination, date string) ([]domain.Flight, error) {
	var flights []domain.Flight
	ok, err := c.get(ctx, searchKey(origin, destination, date), &flights)
	if err != nil || !ok {
		return nil, err
	}
	if flights == nil {
		flights = []domain.Flight{}
	}
	return flights, nil
}

func (c *RedisCache) SetSearch(ctx context.Context, origin, destination, date string, flights []domain.Flight) error {
	return c.set(ctx, searchKey(origin, destination, date), flights, c.searchTTL)
}

func (c *RedisCache) GetDetails(ctx context.Context, flightID string) (*domain.FlightDetails, error) {
	var details domain.FlightDetails
	ok, err := c.get(ctx, detailsKey(flightID), &details)
	if err != nil || !ok {
		return nil, err
	}
	return &details, nil
}

func (c *RedisCache) SetDetails(ctx context.Context, details *domain.FlightDetails) error {
	return c.set(ctx, detailsKey(details.FlightID), details, c.detailsTTL)
}

func (c *RedisCache) get(ctx context.Context, key string, out any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, errors.Wrapf(err, "redis get %s", key)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, errors.Wrapf(err, "decode %s", key)
	}
	return true, nil
}

func (c *RedisCache) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}

func searchKey(origin, destination, date string) string {
	return fmt.Sprintf("cache:search:%s:%s:%s", strings.ToUpper(origin), strings.ToUpper(destination), date)
}

func detailsKey(flightID string) string {
	return "cache:flight-details:" + flightID
}
