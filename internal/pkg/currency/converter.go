package currency

import (
	"fmt"
	"net/http"

	"github.com/MSMikl/aviata-test/internal/pkg/exception"
	"github.com/shopspring/decimal"
)

// ErrRateUnavailable means the current snapshot has no rate for a currency
// the request needs. It is an operational failure, not client input: the
// whole read fails rather than silently dropping offers.
var ErrRateUnavailable = exception.ApplicationError{
	Message:    "exchange rate unavailable",
	StatusCode: http.StatusInternalServerError,
}

// Converted carries the rendered amount string plus the full-precision
// value used as the sort key.
type Converted struct {
	Amount string
	Value  decimal.Decimal
}

// Convert translates amount from one currency into another using the given
// snapshot. Same-currency conversion returns the amount string verbatim.
// The result is truncated toward zero to two fractional digits, never
// rounded; that truncation behavior is part of the pricing contract.
func Convert(amount string, from, to Currency, rates RateSnapshot) (Converted, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return Converted{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}

	if from == to {
		return Converted{Amount: amount, Value: value}, nil
	}

	rate, err := lookupRate(rates, from)
	if err != nil {
		return Converted{}, err
	}

	if to != Base {
		targetRate, err := lookupRate(rates, to)
		if err != nil {
			return Converted{}, err
		}

		rate = rate.Div(targetRate)
	}

	truncated := value.Mul(rate).Truncate(2)

	return Converted{
		Amount: truncated.StringFixed(2),
		Value:  truncated,
	}, nil
}

func lookupRate(rates RateSnapshot, code Currency) (decimal.Decimal, error) {
	raw, ok := rates[code]
	if !ok {
		return decimal.Decimal{}, exception.ApplicationError{
			Message:    ErrRateUnavailable.Message,
			StatusCode: ErrRateUnavailable.StatusCode,
			Cause:      fmt.Errorf("no rate for %s", code),
		}
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, exception.ApplicationError{
			Message:    ErrRateUnavailable.Message,
			StatusCode: ErrRateUnavailable.StatusCode,
			Cause:      fmt.Errorf("malformed rate for %s: %w", code, err),
		}
	}

	return rate, nil
}
