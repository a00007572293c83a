package currency

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestConvert(t *testing.T) {
	rates := RateSnapshot{
		KZT: "1",
		USD: "449.89",
		EUR: "497.31",
		RUB: "5.62",
	}

	convertRequest := func(amount string, from, to Currency, want string) func(t *testing.T) {
		return func(t *testing.T) {
			got, err := Convert(amount, from, to, rates)

			assert.NoError(t, err)
			assert.Equal(t, want, got.Amount)
		}
	}

	t.Run("identity_same_currency", convertRequest("100.00", USD, USD, "100.00"))
	t.Run("identity_preserves_amount_verbatim", convertRequest("100.5", EUR, EUR, "100.5"))
	t.Run("to_base_currency", convertRequest("100.00", USD, KZT, "44989.00"))
	t.Run("cross_currency", convertRequest("100.00", EUR, USD, "110.54"))
	t.Run("ruble_to_base", convertRequest("1000.00", RUB, KZT, "5620.00"))

	t.Run("identity_needs_no_rates", func(t *testing.T) {
		got, err := Convert("42.00", EUR, EUR, RateSnapshot{})

		assert.NoError(t, err)
		assert.Equal(t, "42.00", got.Amount)
	})

	t.Run("truncates_toward_zero_not_rounds", func(t *testing.T) {
		// 10.999 KZT-equivalent must become 10.99, never 11.00
		got, err := Convert("10.999", USD, KZT, RateSnapshot{USD: "1", KZT: "1"})

		assert.NoError(t, err)
		assert.Equal(t, "10.99", got.Amount)
	})

	t.Run("round_trip_within_one_cent", func(t *testing.T) {
		forward, err := Convert("100.00", EUR, USD, rates)
		assert.NoError(t, err)

		back, err := Convert(forward.Amount, USD, EUR, rates)
		assert.NoError(t, err)

		original := decimal.RequireFromString("100.00")
		diff := back.Value.Sub(original).Abs()

		assert.True(t, diff.LessThanOrEqual(decimal.RequireFromString("0.01")),
			"expected round trip within one cent, drifted by %s", diff)
	})

	t.Run("missing_source_rate_fails", func(t *testing.T) {
		_, err := Convert("100.00", USD, KZT, RateSnapshot{KZT: "1"})

		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrRateUnavailable))
	})

	t.Run("missing_target_rate_fails", func(t *testing.T) {
		_, err := Convert("100.00", USD, EUR, RateSnapshot{USD: "449.89", KZT: "1"})

		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrRateUnavailable))
	})

	t.Run("malformed_amount_fails", func(t *testing.T) {
		_, err := Convert("not-a-number", USD, KZT, rates)

		assert.Error(t, err)
	})
}
