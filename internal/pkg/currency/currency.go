// Package currency holds the closed currency set, the exchange rate
// snapshot and the conversion engine used by the read path.
package currency

// Currency is a code from the closed supported set.
type Currency string

const (
	EUR Currency = "EUR"
	RUB Currency = "RUB"
	USD Currency = "USD"
	KZT Currency = "KZT"
)

// Base is the reference currency all rates are expressed against.
const Base = KZT

// Supported lists every currency the service accepts, in a stable order.
func Supported() []Currency {
	return []Currency{EUR, RUB, USD, KZT}
}

// IsSupported reports whether code belongs to the closed set.
func IsSupported(code string) bool {
	for _, c := range Supported() {
		if string(c) == code {
			return true
		}
	}

	return false
}

// RateSnapshot maps a currency code to its value relative to Base,
// as a decimal string. Base itself always maps to "1". The snapshot is
// replaced wholesale on every refresh; no history is kept.
type RateSnapshot map[Currency]string
