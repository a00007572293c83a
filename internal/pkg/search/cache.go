package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MSMikl/aviata-test/internal/app/dto"
	"github.com/MSMikl/aviata-test/internal/pkg/currency"
	"github.com/redis/go-redis/v9"
)

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// ResultCache keeps fully rendered, converted and sorted search results,
// keyed by search id and display currency. Entries are written only for
// completed searches; a hit is returned verbatim, including prices
// computed under whatever rate snapshot was current at write time.
type ResultCache struct {
	redis RedisClient
}

func NewResultCache(redis RedisClient) *ResultCache {
	return &ResultCache{
		redis: redis,
	}
}

func (c *ResultCache) Key(searchID string, cur currency.Currency) string {
	return fmt.Sprintf("results:%s:%s", searchID, cur)
}

func (c *ResultCache) Get(ctx context.Context, key string) (dto.SearchResultsResponse, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return dto.SearchResultsResponse{}, err
	}

	var response dto.SearchResultsResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return dto.SearchResultsResponse{}, err
	}

	return response, nil
}

func (c *ResultCache) Set(ctx context.Context,
	key string,
	response dto.SearchResultsResponse,
	expiration time.Duration,
) error {
	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	err = c.redis.Set(ctx, key, data, expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to set results: %w", err)
	}

	return nil
}
