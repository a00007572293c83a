package dto

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MSMikl/aviata-test/internal/pkg/currency"
	"github.com/MSMikl/aviata-test/internal/pkg/exception"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func resultsHTTPRequest(searchID, cur string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("search_id", searchID)
	routeCtx.URLParams.Add("currency", cur)

	req := httptest.NewRequest(http.MethodGet, "/results/"+searchID+"/"+cur, nil)

	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestResultsRequest_Bind(t *testing.T) {
	assert.NoError(t, InitValidator())

	t.Run("accepts_every_supported_currency", func(t *testing.T) {
		for _, cur := range []string{"EUR", "RUB", "USD", "KZT"} {
			var request ResultsRequest

			err := request.Bind(resultsHTTPRequest("abc-123", cur))

			assert.NoError(t, err)
			assert.Equal(t, "abc-123", request.SearchID)
			assert.Equal(t, currency.Currency(cur), request.DisplayCurrency())
		}
	})

	t.Run("rejects_unknown_currency", func(t *testing.T) {
		var request ResultsRequest

		err := request.Bind(resultsHTTPRequest("abc-123", "XXX"))

		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidCurrency))

		var appErr exception.ApplicationError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, http.StatusUnprocessableEntity, appErr.StatusCode)
	})

	t.Run("rejects_lowercase_currency", func(t *testing.T) {
		var request ResultsRequest

		err := request.Bind(resultsHTTPRequest("abc-123", "usd"))

		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidCurrency))
	})

	t.Run("rejects_empty_currency", func(t *testing.T) {
		var request ResultsRequest

		err := request.Bind(resultsHTTPRequest("abc-123", ""))

		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidCurrency))
	})
}
