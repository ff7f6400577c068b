package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"nepdate/services/calendar-service/internal/models"
	"nepdate/shared/pkg/bikram"
)

// CacheRepository caches conversion results
type CacheRepository interface {
	// GetConversion returns the cached conversion and whether it was found
	GetConversion(ctx context.Context, dir models.Direction, src bikram.Date) (*models.Conversion, bool, error)

	// SetConversion stores a conversion under its direction and source date
	SetConversion(ctx context.Context, conv *models.Conversion) error
}

type cacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCacheRepository creates a new cache repository
func NewCacheRepository(client *redis.Client, ttl time.Duration) CacheRepository {
	return &cacheRepository{
		client: client,
		ttl:    ttl,
	}
}

// ConversionKey is the Redis key of a cached conversion, e.g. bikram:tobs:2025-08-30
func ConversionKey(dir models.Direction, src bikram.Date) string {
	return fmt.Sprintf("bikram:%s:%s", dir, src)
}

func (r *cacheRepository) GetConversion(ctx context.Context, dir models.Direction, src bikram.Date) (*models.Conversion, bool, error) {
	val, err := r.client.Get(ctx, ConversionKey(dir, src)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get conversion: %w", err)
	}

	var conv models.Conversion
	if err := json.Unmarshal(val, &conv); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached conversion: %w", err)
	}
	return &conv, true, nil
}

func (r *cacheRepository) SetConversion(ctx context.Context, conv *models.Conversion) error {
	data, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("failed to encode conversion: %w", err)
	}
	return r.client.Set(ctx, ConversionKey(conv.Direction, conv.Source), data, r.ttl).Err()
}
