package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/MSMikl/aviata-test/internal/app/dto"
	"github.com/MSMikl/aviata-test/internal/app/model"
	"github.com/MSMikl/aviata-test/internal/pkg/currency"
	"github.com/MSMikl/aviata-test/internal/pkg/logger"
	"github.com/MSMikl/aviata-test/internal/pkg/offerprovider"
	"github.com/MSMikl/aviata-test/internal/pkg/search"
	"github.com/shopspring/decimal"
)

type SearchRepository interface {
	Create(ctx context.Context) (model.Search, error)
	Load(ctx context.Context, searchID string) (*model.Search, error)
	AppendItems(ctx context.Context, searchID string, items []model.Variant) error
	SetStatus(ctx context.Context, searchID string, status model.SearchStatus) error
}

type RatesLoader interface {
	LoadRates(ctx context.Context) (currency.RateSnapshot, error)
}

type ResultCacher interface {
	Key(searchID string, cur currency.Currency) string
	Get(ctx context.Context, key string) (dto.SearchResultsResponse, error)
	Set(ctx context.Context, key string, response dto.SearchResultsResponse, expiration time.Duration) error
}

type AggregatorService struct {
	Searches        SearchRepository
	Rates           RatesLoader
	Cache           ResultCacher
	ProviderFactory *offerprovider.Factory
	ResultCacheTTL  time.Duration
}

func NewAggregatorService(searches SearchRepository, rates RatesLoader,
	cache ResultCacher, providerFactory *offerprovider.Factory,
	resultCacheTTL time.Duration) *AggregatorService {
	return &AggregatorService{
		Searches:        searches,
		Rates:           rates,
		Cache:           cache,
		ProviderFactory: providerFactory,
		ResultCacheTTL:  resultCacheTTL,
	}
}

// CreateSearch allocates a new pending search, returns its id right away
// and starts the aggregation in the background. Nothing about provider
// outcomes ever reaches the caller of this method.
func (s *AggregatorService) CreateSearch(ctx context.Context) (dto.CreateSearchResponse, error) {
	record, err := s.Searches.Create(ctx)
	if err != nil {
		return dto.CreateSearchResponse{}, fmt.Errorf("create search: %w", err)
	}

	go s.runSearch(context.WithoutCancel(ctx), record.ID)

	return dto.CreateSearchResponse{SearchID: record.ID}, nil
}

// runSearch fans out to every registered provider, appends whatever each
// one contributes and then marks the search completed. Completion means
// the aggregation attempt finished, not that it succeeded: the status is
// written even when every provider failed. Each provider gets exactly one
// attempt; a failing task never blocks or cancels its siblings.
func (s *AggregatorService) runSearch(ctx context.Context, searchID string) {
	ctx = context.WithValue(ctx, logger.SearchIDKey, searchID)

	providers := s.ProviderFactory.GetAllProviders()

	var wg sync.WaitGroup

	wg.Add(len(providers))
	for name, provider := range providers {
		go func(name string, p offerprovider.Provider) {
			defer wg.Done()

			variants, err := p.Search(ctx)
			if err != nil {
				slog.WarnContext(ctx, "provider failed",
					slog.String("provider", name),
					slog.Any("error", err))

				return
			}

			if len(variants) == 0 {
				return
			}

			if err := s.Searches.AppendItems(ctx, searchID, variants); err != nil {
				slog.ErrorContext(ctx, "failed to append provider items",
					slog.String("provider", name),
					slog.Any("error", err))
			}
		}(name, provider)
	}

	wg.Wait()

	if err := s.Searches.SetStatus(ctx, searchID, model.StatusCompleted); err != nil {
		slog.ErrorContext(ctx, "failed to complete search", slog.Any("error", err))
	}
}

// GetResults renders a point-in-time view of the search in the requested
// currency: convert every item, sort ascending by converted price, and
// cache the rendered structure once the search has completed. It never
// waits for aggregation; pending and partial item lists render the same
// way final ones do.
func (s *AggregatorService) GetResults(ctx context.Context, req dto.ResultsRequest) (dto.SearchResultsResponse, error) {
	target := req.DisplayCurrency()
	cacheKey := s.Cache.Key(req.SearchID, target)

	if cached, err := s.Cache.Get(ctx, cacheKey); err == nil {
		slog.DebugContext(ctx, "serving results from cache", slog.String("key", cacheKey))

		return cached, nil
	}

	record, err := s.Searches.Load(ctx, req.SearchID)
	if err != nil {
		return dto.SearchResultsResponse{}, fmt.Errorf("load search: %w", err)
	}

	if record == nil {
		return dto.SearchResultsResponse{}, ErrSearchNotFound
	}

	rates, err := s.Rates.LoadRates(ctx)
	if err != nil {
		return dto.SearchResultsResponse{}, fmt.Errorf("load rates: %w", err)
	}

	if rates == nil {
		rates = currency.RateSnapshot{}
	}

	priced := make([]search.PricedVariant, 0, len(record.Items))

	for _, item := range record.Items {
		item.DisplayPrice = model.Price{Currency: target}

		var value decimal.Decimal

		if !item.Pricing.Empty() {
			converted, err := currency.Convert(item.Pricing.Total, item.Pricing.Currency, target, rates)
			if err != nil {
				return dto.SearchResultsResponse{}, fmt.Errorf("convert price: %w", err)
			}

			item.DisplayPrice.Amount = converted.Amount
			value = converted.Value
		}

		priced = append(priced, search.PricedVariant{Variant: item, Value: value})
	}

	response := dto.SearchResultsResponse{
		SearchID: record.ID,
		Status:   record.Status,
		Items:    search.SortByPrice(priced),
	}

	if record.Status == model.StatusCompleted {
		if err := s.Cache.Set(ctx, cacheKey, response, s.ResultCacheTTL); err != nil {
			slog.WarnContext(ctx, "failed to cache results", slog.Any("error", err))
		}
	}

	return response, nil
}
