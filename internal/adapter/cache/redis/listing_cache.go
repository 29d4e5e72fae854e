package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/staymarket/listing-service/internal/entity"
	"github.com/staymarket/listing-service/internal/port/cache"
	"go.uber.org/zap"
)

const listingTTL = 5 * time.Minute

type listingCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewClient(addr, password string, db int, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	logger.Info("Connected to Redis", zap.String("address", addr))
	return rdb, nil
}

func NewListingCache(client *redis.Client, logger *zap.Logger) cache.ListingCache {
	return &listingCache{client: client, logger: logger}
}

func listingKey(id int64) string {
	return fmt.Sprintf("listing:%d", id)
}

func (c *listingCache) GetListing(ctx context.Context, id int64) (*entity.Listing, error) {
	data, err := c.client.Get(ctx, listingKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cache.ErrNotFound
		}
		return nil, fmt.Errorf("listingCache.Get id=%d: %w", id, err)
	}
	var listing entity.Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, fmt.Errorf("listingCache.Get id=%d: decode: %w", id, err)
	}
	return &listing, nil
}

func (c *listingCache) SetListing(ctx context.Context, listing *entity.Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("listingCache.Set id=%d: encode: %w", listing.ID, err)
	}
	if err := c.client.Set(ctx, listingKey(listing.ID), data, listingTTL).Err(); err != nil {
		return fmt.Errorf("listingCache.Set id=%d: %w", listing.ID, err)
	}
	return nil
}

func (c *listingCache) DeleteListing(ctx context.Context, id int64) error {
	if err := c.client.Del(ctx, listingKey(id)).Err(); err != nil {
		return fmt.Errorf("listingCache.Delete id=%d: %w", id, err)
	}
	return nil
}
