package dto

import (
	"net/http"

	"github.com/MSMikl/aviata-test/internal/app/model"
	"github.com/MSMikl/aviata-test/internal/pkg/currency"
	"github.com/MSMikl/aviata-test/internal/pkg/exception"
	"github.com/go-chi/chi/v5"
)

// ErrInvalidCurrency rejects a display currency outside the supported set
// before any store access happens.
var ErrInvalidCurrency = exception.ApplicationError{
	StatusCode: http.StatusUnprocessableEntity,
	Message:    "incorrect currency code",
}

// CreateSearchRequest is the (empty) body of POST /search. Search criteria
// are fixed per provider contract.
type CreateSearchRequest struct{}

type CreateSearchResponse struct {
	SearchID string `json:"search_id"`
}

// ResultsRequest identifies one rendered view of a search: the record plus
// the display currency to convert every offer into.
type ResultsRequest struct {
	SearchID string `json:"search_id" validate:"required"`
	Currency string `json:"currency" validate:"required,oneof=EUR RUB USD KZT"`
}

// Bind populates the request from URL parameters and validates the
// currency against the closed set.
func (r *ResultsRequest) Bind(req *http.Request) error {
	r.SearchID = chi.URLParam(req, "search_id")
	r.Currency = chi.URLParam(req, "currency")

	if err := ValidateSingleError(r); err != nil {
		return exception.ApplicationError{
			StatusCode: ErrInvalidCurrency.StatusCode,
			Message:    ErrInvalidCurrency.Message,
			Cause:      err,
		}
	}

	return nil
}

// DisplayCurrency returns the validated currency value.
func (r *ResultsRequest) DisplayCurrency() currency.Currency {
	return currency.Currency(r.Currency)
}

// SearchResultsResponse is the rendered view of a search record: the
// persisted fields plus per-item display prices in the requested currency.
type SearchResultsResponse struct {
	SearchID string             `json:"search_id"`
	Status   model.SearchStatus `json:"status"`
	Items    []model.Variant    `json:"items"`
}
