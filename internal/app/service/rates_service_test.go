package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/MSMikl/aviata-test/internal/pkg/currency"
	"github.com/stretchr/testify/assert"
)

type fakeRatesUpserter struct {
	mu        sync.Mutex
	snapshots []currency.RateSnapshot
}

func (f *fakeRatesUpserter) UpsertRates(_ context.Context, rates currency.RateSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.snapshots = append(f.snapshots, rates)

	return nil
}

func (f *fakeRatesUpserter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.snapshots)
}

func (f *fakeRatesUpserter) last() currency.RateSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.snapshots[len(f.snapshots)-1]
}

const rateFeedBody = `<rates>
<item><title>USD</title><description>449.89</description></item>
<item><title>EUR</title><description>489.10</description></item>
</rates>`

func TestRatesService_Refresh(t *testing.T) {
	t.Run("fetches_parses_and_persists_the_feed", func(t *testing.T) {
		var gotDate string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotDate = r.URL.Query().Get("fdate")
			_, _ = w.Write([]byte(rateFeedBody))
		}))
		defer server.Close()

		repo := &fakeRatesUpserter{}
		s := NewRatesService(repo, server.URL, time.Hour)

		err := s.Refresh(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, time.Now().Format("02.01.2006"), gotDate)
		assert.Equal(t, 1, repo.count())

		snapshot := repo.last()
		assert.Equal(t, "449.89", snapshot[currency.USD])
		assert.Equal(t, "489.10", snapshot[currency.EUR])
		assert.Equal(t, "1", snapshot[currency.KZT])
	})

	t.Run("non_200_feed_is_an_error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		repo := &fakeRatesUpserter{}
		s := NewRatesService(repo, server.URL, time.Hour)

		err := s.Refresh(context.Background())

		assert.Error(t, err)
		assert.Equal(t, 0, repo.count())
	})

	t.Run("unreachable_feed_is_an_error", func(t *testing.T) {
		repo := &fakeRatesUpserter{}
		s := NewRatesService(repo, "http://127.0.0.1:1", time.Hour)

		err := s.Refresh(context.Background())

		assert.Error(t, err)
		assert.Equal(t, 0, repo.count())
	})
}

func TestRatesService_Run(t *testing.T) {
	t.Run("refreshes_immediately_and_on_every_tick", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(rateFeedBody))
		}))
		defer server.Close()

		repo := &fakeRatesUpserter{}
		s := NewRatesService(repo, server.URL, 20*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})

		go func() {
			s.Run(ctx)
			close(done)
		}()

		assert.Eventually(t, func() bool {
			return repo.count() >= 3
		}, 2*time.Second, 5*time.Millisecond)

		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("run did not stop after cancellation")
		}
	})
}
