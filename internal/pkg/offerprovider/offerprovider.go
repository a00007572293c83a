// Package offerprovider defines the capability every upstream flight
// provider implements and the factory the orchestrator fans out over.
// Adding a provider means implementing Provider in its own package and
// registering it; there is no shared base type.
package offerprovider

import (
	"context"
	"time"

	"github.com/MSMikl/aviata-test/internal/app/model"
	"github.com/go-redis/redis_rate/v10"
)

// Config carries the per-provider transport settings.
type Config struct {
	SearchAPIURL string
	Timeout      time.Duration
	RateLimitRPS int
	Limiter      *redis_rate.Limiter
}

// Provider fetches one upstream's raw search document and normalizes it
// into canonical variants. Each provider gets exactly one attempt per
// search; failures are the caller's to log and contain.
type Provider interface {
	Search(ctx context.Context) ([]model.Variant, error)
}

type Factory struct {
	Provider map[string]Provider
}

func NewFactory() *Factory {
	return &Factory{
		Provider: make(map[string]Provider),
	}
}

func (f *Factory) AddProvider(name string, provider Provider) {
	f.Provider[name] = provider
}

func (f *Factory) GetProvider(name string) Provider {
	return f.Provider[name]
}

func (f *Factory) GetAllProviders() map[string]Provider {
	return f.Provider
}
