package search

import (
	"sort"

	"github.com/MSMikl/aviata-test/internal/app/model"
	"github.com/shopspring/decimal"
)

// PricedVariant pairs a rendered variant with the numeric value of its
// display price, used only as the sort key.
type PricedVariant struct {
	Variant model.Variant
	Value   decimal.Decimal
}

// SortByPrice orders variants ascending by converted price. The sort is
// stable: equal-price variants keep their insertion order.
func SortByPrice(priced []PricedVariant) []model.Variant {
	sort.SliceStable(priced, func(i, j int) bool {
		return priced[i].Value.LessThan(priced[j].Value)
	})

	variants := make([]model.Variant, len(priced))
	for i, p := range priced {
		variants[i] = p.Variant
	}

	return variants
}
