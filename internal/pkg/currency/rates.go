package currency

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/shopspring/decimal"
)

// ParseRateFeed builds a fresh snapshot from the national bank RSS feed,
// where each <item> carries the currency code in <title> and its value
// against the base currency in <description>. The base currency is pinned
// to "1"; items for unrecognized currencies are skipped.
func ParseRateFeed(raw []byte) (RateSnapshot, error) {
	doc, err := xmlquery.Parse(strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("parse rate feed: %w", err)
	}

	rates := RateSnapshot{Base: "1"}

	for _, item := range xmlquery.Find(doc, "//item") {
		title := item.SelectElement("title")
		description := item.SelectElement("description")

		if title == nil || description == nil {
			continue
		}

		code := strings.TrimSpace(title.InnerText())
		if !IsSupported(code) {
			continue
		}

		value := strings.TrimSpace(description.InnerText())
		if _, err := decimal.NewFromString(value); err != nil {
			slog.Warn("skipping malformed rate feed entry",
				slog.String("currency", code),
				slog.String("value", value))

			continue
		}

		rates[Currency(code)] = value
	}

	return rates, nil
}
