package sabre

import (
	"context"
	"net/http"
	"time"

	"github.com/MSMikl/aviata-test/internal/app/model"
	"github.com/MSMikl/aviata-test/internal/pkg/offerprovider"
	"github.com/MSMikl/aviata-test/internal/pkg/offerprovider/providerutils"
	"github.com/go-redis/redis_rate/v10"
)

const ProviderName = "Sabre"

type Provider struct {
	Name         string
	SearchAPIURL string
	Client       *http.Client
	Limiter      *redis_rate.Limiter
	RateLimitRPS int
	Timeout      time.Duration
}

func NewProvider(config offerprovider.Config) *Provider {
	return &Provider{
		Name:         ProviderName,
		SearchAPIURL: config.SearchAPIURL,
		Client:       &http.Client{Timeout: config.Timeout},
		Limiter:      config.Limiter,
		RateLimitRPS: config.RateLimitRPS,
		Timeout:      config.Timeout,
	}
}

// Search fetches the Sabre search document and normalizes it. One attempt
// per search; the transport timeout is the only deadline.
func (p *Provider) Search(ctx context.Context) ([]model.Variant, error) {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	body, err := providerutils.Fetch(ctx, p.Client, p.Name, p.SearchAPIURL, p.Limiter, p.RateLimitRPS)
	if err != nil {
		return nil, err
	}

	return Parse(body)
}
