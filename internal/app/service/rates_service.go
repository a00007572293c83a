package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/MSMikl/aviata-test/internal/pkg/currency"
)

type RatesUpserter interface {
	UpsertRates(ctx context.Context, rates currency.RateSnapshot) error
}

// RatesService keeps the exchange rate snapshot fresh. It polls the
// national bank feed once at startup and then on a fixed cadence,
// replacing the persisted snapshot wholesale on every refresh.
type RatesService struct {
	Repo     RatesUpserter
	FeedURL  string
	Interval time.Duration
	Client   *http.Client
}

func NewRatesService(repo RatesUpserter, feedURL string, interval time.Duration) *RatesService {
	return &RatesService{
		Repo:     repo,
		FeedURL:  feedURL,
		Interval: interval,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Run refreshes immediately, then on every tick until the context is done.
// A failed refresh is logged and retried on the next tick; the previous
// snapshot stays in effect in between.
func (s *RatesService) Run(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		slog.ErrorContext(ctx, "initial rates refresh failed", slog.Any("error", err))
	}

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				slog.ErrorContext(ctx, "rates refresh failed", slog.Any("error", err))
			}
		case <-ctx.Done():
			slog.InfoContext(ctx, "rates refresher stopped")

			return
		}
	}
}

// Refresh fetches today's feed, parses it into a snapshot and persists it.
func (s *RatesService) Refresh(ctx context.Context) error {
	feedURL, err := url.Parse(s.FeedURL)
	if err != nil {
		return fmt.Errorf("parse feed url: %w", err)
	}

	query := feedURL.Query()
	query.Set("fdate", time.Now().Format("02.01.2006"))
	feedURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL.String(), nil)
	if err != nil {
		return fmt.Errorf("build feed request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch rate feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rate feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read rate feed: %w", err)
	}

	rates, err := currency.ParseRateFeed(body)
	if err != nil {
		return err
	}

	if err := s.Repo.UpsertRates(ctx, rates); err != nil {
		return err
	}

	slog.InfoContext(ctx, "exchange rates refreshed", slog.Int("currencies", len(rates)))

	return nil
}
