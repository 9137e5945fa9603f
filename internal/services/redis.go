package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/royalcourier/backoffice-backend/internal/models"
)

var RedisClient *redis.Client

const priceCategoriesKey = "prices:categories"

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// CachePriceCategories stores the full category set consulted by the price
// calculation endpoint. Price documents change rarely; shipment quoting reads
// them on every request.
func CachePriceCategories(ctx context.Context, categories []models.PriceCategory) error {
	if RedisClient == nil {
		return nil
	}
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return RedisClient.Set(ctx, priceCategoriesKey, data, time.Hour).Err()
}

// GetCachedPriceCategories retrieves the cached category set. A cache miss,
// or an uninitialized client, returns redis.Nil.
func GetCachedPriceCategories(ctx context.Context) ([]models.PriceCategory, error) {
	if RedisClient == nil {
		return nil, redis.Nil
	}
	data, err := RedisClient.Get(ctx, priceCategoriesKey).Result()
	if err != nil {
		return nil, err
	}

	var categories []models.PriceCategory
	if err := json.Unmarshal([]byte(data), &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// InvalidatePriceCache drops the cached categories after any price write.
func InvalidatePriceCache(ctx context.Context) error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Del(ctx, priceCategoriesKey).Err()
}

// PublishShipmentUpdate publishes a shipment status change to Redis pub/sub
// for any interested out-of-process consumer.
func PublishShipmentUpdate(ctx context.Context, waybillNumber, status string) error {
	if RedisClient == nil {
		return nil
	}
	updateData := map[string]interface{}{
		"waybillNumber": waybillNumber,
		"status":        status,
		"timestamp":     time.Now().Unix(),
	}

	data, err := json.Marshal(updateData)
	if err != nil {
		return err
	}

	return RedisClient.Publish(ctx, "shipment:updates", data).Err()
}
