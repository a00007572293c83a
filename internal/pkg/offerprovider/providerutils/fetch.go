package providerutils

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/MSMikl/aviata-test/internal/pkg/exception"
	"github.com/go-redis/redis_rate/v10"
)

// Fetch posts a search request to the provider endpoint and returns the
// raw response body. One attempt, no retries; any transport failure or
// non-2xx status is ErrUpstreamFetch. The limiter caps outbound calls per
// provider across process instances.
func Fetch(ctx context.Context, client *http.Client, name, url string,
	limiter *redis_rate.Limiter, rps int) ([]byte, error) {

	res, err := limiter.Allow(ctx, fmt.Sprintf("limit:%s", name), redis_rate.PerSecond(rps))
	if err != nil {
		return nil, fmt.Errorf("rate limit check: %w", err)
	}

	if res.Allowed == 0 {
		return nil, ErrRateLimitExceeded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, exception.ApplicationError{
			Message:    ErrUpstreamFetch.Message,
			StatusCode: ErrUpstreamFetch.StatusCode,
			Cause:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, exception.ApplicationError{
			Message:    ErrUpstreamFetch.Message,
			StatusCode: ErrUpstreamFetch.StatusCode,
			Cause:      fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exception.ApplicationError{
			Message:    ErrUpstreamFetch.Message,
			StatusCode: ErrUpstreamFetch.StatusCode,
			Cause:      err,
		}
	}

	return body, nil
}
