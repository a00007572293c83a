package sitecity

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/MSMikl/aviata-test/internal/app/model"
	"github.com/MSMikl/aviata-test/internal/pkg/currency"
	"github.com/MSMikl/aviata-test/internal/pkg/exception"
	"github.com/MSMikl/aviata-test/internal/pkg/offerprovider/providerutils"
	"github.com/antchfx/xmlquery"
	"github.com/shopspring/decimal"
)

const timeLayout = "02.01.2006 15:04"

// Parse normalizes a SiteCity search response into canonical variants.
// Offers live under FlightData/FlightData; segments are grouped into
// flights by their Rph leg reference, segments without one all fall into
// a single default flight. Optional fields degrade to nil; an offer whose
// timeline cannot be parsed is dropped; only an unparseable root document
// fails the whole response.
func Parse(raw []byte) ([]model.Variant, error) {
	doc, err := xmlquery.Parse(strings.NewReader(string(raw)))
	if err != nil {
		return nil, exception.ApplicationError{
			Message:    providerutils.ErrDocumentParse.Message,
			StatusCode: providerutils.ErrDocumentParse.StatusCode,
			Cause:      err,
		}
	}

	var result []model.Variant

	offers := xmlquery.Find(doc, "//*[local-name()='FlightData']/*[local-name()='FlightData']")
	for _, offer := range offers {
		variant, err := parseOffer(offer)
		if err != nil {
			slog.Warn("dropping unparseable sitecity offer", slog.String("error", err.Error()))

			continue
		}

		result = append(result, variant)
	}

	return result, nil
}

func parseOffer(offer *xmlquery.Node) (model.Variant, error) {
	groupOrder := []string{}
	grouped := map[string][]model.Segment{}

	for _, node := range xmlquery.Find(offer, ".//*[local-name()='Segments']/*[local-name()='OfferSegment']") {
		segment, err := parseSegment(node)
		if err != nil {
			return model.Variant{}, err
		}

		rph := elementText(node, ".//*[local-name()='Rph']")
		if rph == "" {
			rph = "1"
		}

		if _, seen := grouped[rph]; !seen {
			groupOrder = append(groupOrder, rph)
		}

		grouped[rph] = append(grouped[rph], segment)
	}

	flights := make([]model.Flight, 0, len(groupOrder))

	for _, rph := range groupOrder {
		segments := grouped[rph]
		sort.SliceStable(segments, func(i, j int) bool {
			return segments[i].Dep.At.Before(segments[j].Dep.At)
		})

		flights = append(flights, model.Flight{
			Duration: int(segments[len(segments)-1].Arr.At.Sub(segments[0].Dep.At).Seconds()),
			Segments: segments,
		})
	}

	return model.Variant{
		Flights:           flights,
		Refundable:        false,
		ValidatingAirline: optionalText(offer, ".//*[local-name()='ValidatingAirline']"),
		Pricing:           parsePricing(offer),
	}, nil
}

func parseSegment(node *xmlquery.Node) (model.Segment, error) {
	marketing := elementText(node, ".//*[local-name()='MarketingAirline']")

	// flight numbers come prefixed with the marketing carrier, e.g. "KC-931"
	flightNumber := elementText(node, ".//*[local-name()='FlightNum']")
	flightNumber = strings.Replace(flightNumber, marketing+"-", "", 1)

	dep, err := parseAirportTime(node, "Departure")
	if err != nil {
		return model.Segment{}, err
	}

	arr, err := parseAirportTime(node, "Arrival")
	if err != nil {
		return model.Segment{}, err
	}

	return model.Segment{
		OperatingAirline: elementText(node, ".//*[local-name()='OperatingAirline']"),
		MarketingAirline: marketing,
		FlightNumber:     flightNumber,
		Equipment:        optionalText(node, ".//*[local-name()='AirCraft']"),
		Dep:              dep,
		Arr:              arr,
		Baggage:          parseBaggage(node),
	}, nil
}

func parseAirportTime(node *xmlquery.Node, direction string) (model.AirportTime, error) {
	raw := elementText(node, fmt.Sprintf(".//*[local-name()='%s']/*[local-name()='Date']", direction))

	at, err := time.Parse(timeLayout, raw)
	if err != nil {
		return model.AirportTime{}, fmt.Errorf("parse %s time %q: %w", strings.ToLower(direction), raw, err)
	}

	return model.AirportTime{
		At:      at,
		Airport: elementText(node, fmt.Sprintf(".//*[local-name()='%s']/*[local-name()='Iata']", direction)),
	}, nil
}

func parseBaggage(node *xmlquery.Node) *string {
	baggageType := elementText(node, ".//*[local-name()='Baggage']/*[local-name()='BaggageType']")
	if baggageType != "Pieces" {
		return nil
	}

	count := elementText(node, ".//*[local-name()='Baggage']/*[local-name()='Count']")
	if count == "" || count == "0" {
		return nil
	}

	allowance := count + "PC"

	return &allowance
}

// parsePricing reads the adult fare. SiteCity quotes in EUR and reports no
// tax breakdown, so total and base coincide and taxes are zero.
func parsePricing(offer *xmlquery.Node) model.Pricing {
	raw := elementText(offer, ".//*[local-name()='AdultPrice']")

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		slog.Warn("sitecity offer without a usable fare", slog.String("adult_price", raw))

		return model.Pricing{}
	}

	return model.Pricing{
		Total:    amount.StringFixed(2),
		Base:     amount.StringFixed(2),
		Taxes:    "0.00",
		Currency: currency.EUR,
	}
}

func elementText(node *xmlquery.Node, expr string) string {
	found := xmlquery.FindOne(node, expr)
	if found == nil {
		return ""
	}

	return strings.TrimSpace(found.InnerText())
}

func optionalText(node *xmlquery.Node, expr string) *string {
	text := elementText(node, expr)
	if text == "" {
		return nil
	}

	return &text
}
