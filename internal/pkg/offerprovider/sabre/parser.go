package sabre

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/MSMikl/aviata-test/internal/app/model"
	"github.com/MSMikl/aviata-test/internal/pkg/currency"
	"github.com/MSMikl/aviata-test/internal/pkg/exception"
	"github.com/MSMikl/aviata-test/internal/pkg/offerprovider/aircraft"
	"github.com/MSMikl/aviata-test/internal/pkg/offerprovider/providerutils"
	"github.com/antchfx/xmlquery"
	"github.com/shopspring/decimal"
)

const timeLayout = "2006-01-02T15:04:05"

// Parse normalizes a Sabre low-fare search response into canonical
// variants. The document is a SOAP envelope with versioned namespaces,
// so lookups match on local names instead of qualified names. Each
// FlightSegment becomes its own single-segment flight; the upstream
// carries no leg reference.
func Parse(raw []byte) ([]model.Variant, error) {
	doc, err := xmlquery.Parse(strings.NewReader(string(raw)))
	if err != nil {
		return nil, exception.ApplicationError{
			Message:    providerutils.ErrDocumentParse.Message,
			StatusCode: providerutils.ErrDocumentParse.StatusCode,
			Cause:      err,
		}
	}

	body := xmlquery.FindOne(doc, "//*[local-name()='Body']")
	if body == nil {
		return nil, exception.ApplicationError{
			Message:    providerutils.ErrDocumentParse.Message,
			StatusCode: providerutils.ErrDocumentParse.StatusCode,
			Cause:      fmt.Errorf("document has no body element"),
		}
	}

	var result []model.Variant

	for _, itinerary := range xmlquery.Find(body, ".//*[local-name()='PricedItinerary']") {
		variant, err := parseItinerary(itinerary)
		if err != nil {
			slog.Warn("dropping unparseable sabre itinerary", slog.String("error", err.Error()))

			continue
		}

		result = append(result, variant)
	}

	return result, nil
}

func parseItinerary(itinerary *xmlquery.Node) (model.Variant, error) {
	baggage := baggageBySegment(itinerary)

	segments := xmlquery.Find(itinerary, ".//*[contains(local-name(), 'FlightSegment')]")
	flights := make([]model.Flight, 0, len(segments))

	for index, node := range segments {
		segment, err := parseSegment(node, baggage[strconv.Itoa(index)])
		if err != nil {
			return model.Variant{}, err
		}

		flights = append(flights, model.Flight{
			Duration: int(segment.Arr.At.Sub(segment.Dep.At).Seconds()),
			Segments: []model.Segment{segment},
		})
	}

	return model.Variant{
		Flights:           flights,
		Refundable:        false,
		ValidatingAirline: validatingCarrier(itinerary),
		Pricing:           parsePricing(itinerary),
	}, nil
}

// baggageBySegment maps a segment ordinal to its piece allowance,
// collected from the itinerary's BaggageInformation entries.
func baggageBySegment(itinerary *xmlquery.Node) map[string]string {
	allowances := map[string]string{}

	for _, info := range xmlquery.Find(itinerary, ".//*[contains(local-name(), 'BaggageInformation')]") {
		segment := xmlquery.FindOne(info, ".//*[contains(local-name(), 'Segment')]")
		allowance := xmlquery.FindOne(info, ".//*[contains(local-name(), 'Allowance')]")

		if segment == nil || allowance == nil {
			continue
		}

		allowances[segment.SelectAttr("Id")] = allowance.SelectAttr("Pieces")
	}

	return allowances
}

func parseSegment(node *xmlquery.Node, pieces string) (model.Segment, error) {
	dep, err := airportTime(node, "DepartureDateTime", "DepartureAirport")
	if err != nil {
		return model.Segment{}, err
	}

	arr, err := airportTime(node, "ArrivalDateTime", "ArrivalAirport")
	if err != nil {
		return model.Segment{}, err
	}

	var equipment *string
	if code := attr(node, "Equipment", "AirEquipType"); code != "" {
		equipment = aircraft.Lookup(code)
	}

	var baggage *string
	if pieces != "" && pieces != "0" {
		allowance := pieces + "PC"
		baggage = &allowance
	}

	return model.Segment{
		OperatingAirline: attr(node, "OperatingAirline", "Code"),
		MarketingAirline: attr(node, "MarketingAirline", "Code"),
		FlightNumber:     attr(node, "OperatingAirline", "FlightNumber"),
		Equipment:        equipment,
		Dep:              dep,
		Arr:              arr,
		Baggage:          baggage,
	}, nil
}

func airportTime(node *xmlquery.Node, timeAttr, airportName string) (model.AirportTime, error) {
	raw := node.SelectAttr(timeAttr)

	at, err := time.Parse(timeLayout, raw)
	if err != nil {
		return model.AirportTime{}, fmt.Errorf("parse %s %q: %w", timeAttr, raw, err)
	}

	return model.AirportTime{
		At:      at,
		Airport: attr(node, airportName, "LocationCode"),
	}, nil
}

func validatingCarrier(itinerary *xmlquery.Node) *string {
	node := xmlquery.FindOne(itinerary,
		".//*[contains(local-name(), 'ValidatingCarrier')]/*[contains(local-name(), 'Default')]")
	if node == nil {
		return nil
	}

	code := node.SelectAttr("Code")
	if code == "" {
		return nil
	}

	return &code
}

// parsePricing extracts the itinerary fare breakdown. An itinerary without
// an ItinTotalFare element is a valid offer that simply carries no fare;
// it yields an empty Pricing rather than an error. An unrecognized fare
// currency is degraded the same way, since it could never be converted.
func parsePricing(itinerary *xmlquery.Node) model.Pricing {
	fare := xmlquery.FindOne(itinerary, ".//*[contains(local-name(), 'ItinTotalFare')]")
	if fare == nil {
		return model.Pricing{}
	}

	code := attr(fare, "TotalFare", "CurrencyCode")
	if !currency.IsSupported(code) {
		slog.Warn("sabre fare in unsupported currency", slog.String("currency", code))

		return model.Pricing{}
	}

	total, errTotal := decimal.NewFromString(attr(fare, "TotalFare", "Amount"))
	base, errBase := decimal.NewFromString(attr(fare, "BaseFare", "Amount"))
	if errTotal != nil || errBase != nil {
		slog.Warn("sabre fare with malformed amounts")

		return model.Pricing{}
	}

	taxes := decimal.Zero
	if taxesNode := xmlquery.FindOne(fare, ".//*[contains(local-name(), 'Taxes')]"); taxesNode != nil {
		if tax := xmlquery.FindOne(taxesNode, ".//*[contains(local-name(), 'Tax')]"); tax != nil {
			if parsed, err := decimal.NewFromString(tax.SelectAttr("Amount")); err == nil {
				taxes = parsed
			}
		}
	}

	return model.Pricing{
		Total:    total.StringFixed(2),
		Base:     base.StringFixed(2),
		Taxes:    taxes.StringFixed(2),
		Currency: currency.Currency(code),
	}
}

func attr(node *xmlquery.Node, localName, attrName string) string {
	found := xmlquery.FindOne(node, fmt.Sprintf(".//*[contains(local-name(), '%s')]", localName))
	if found == nil {
		return ""
	}

	return found.SelectAttr(attrName)
}
