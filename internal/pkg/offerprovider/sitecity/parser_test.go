package sitecity

import (
	"errors"
	"testing"
	"time"

	"github.com/MSMikl/aviata-test/internal/app/model"
	"github.com/MSMikl/aviata-test/internal/pkg/currency"
	"github.com/MSMikl/aviata-test/internal/pkg/offerprovider/providerutils"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

const searchResponse = `<?xml version="1.0" encoding="utf-8"?>
<SearchResult xmlns:a="http://schemas.datacontract.org/2004/07/SiteCity.Avia.Search"
              xmlns:b="http://schemas.datacontract.org/2004/07/SiteCity.Avia.Common.Avia">
  <a:FlightData>
    <a:FlightData>
      <b:ValidatingAirline>KC</b:ValidatingAirline>
      <a:AdultPrice>150.5</a:AdultPrice>
      <b:Segments>
        <b:OfferSegment>
          <b:AirCraft>Airbus A321</b:AirCraft>
          <b:OperatingAirline>KC</b:OperatingAirline>
          <b:MarketingAirline>KC</b:MarketingAirline>
          <b:FlightNum>KC-932</b:FlightNum>
          <b:Baggage><b:BaggageType>Pieces</b:BaggageType><b:Count>2</b:Count></b:Baggage>
          <b:Departure><b:Iata>NQZ</b:Iata><b:Date>01.06.2024 14:00</b:Date></b:Departure>
          <b:Arrival><b:Iata>FRA</b:Iata><b:Date>01.06.2024 17:45</b:Date></b:Arrival>
          <b:Rph>1</b:Rph>
        </b:OfferSegment>
        <b:OfferSegment>
          <b:OperatingAirline>KC</b:OperatingAirline>
          <b:MarketingAirline>KC</b:MarketingAirline>
          <b:FlightNum>KC-931</b:FlightNum>
          <b:Baggage><b:BaggageType>Weight</b:BaggageType></b:Baggage>
          <b:Departure><b:Iata>ALA</b:Iata><b:Date>01.06.2024 10:30</b:Date></b:Departure>
          <b:Arrival><b:Iata>NQZ</b:Iata><b:Date>01.06.2024 12:00</b:Date></b:Arrival>
          <b:Rph>1</b:Rph>
        </b:OfferSegment>
      </b:Segments>
    </a:FlightData>
    <a:FlightData>
      <b:ValidatingAirline>LH</b:ValidatingAirline>
      <a:AdultPrice>99</a:AdultPrice>
      <b:Segments>
        <b:OfferSegment>
          <b:OperatingAirline>LH</b:OperatingAirline>
          <b:MarketingAirline>LH</b:MarketingAirline>
          <b:FlightNum>LH-646</b:FlightNum>
          <b:Baggage><b:BaggageType>Pieces</b:BaggageType><b:Count>0</b:Count></b:Baggage>
          <b:Departure><b:Iata>ALA</b:Iata><b:Date>02.06.2024 08:00</b:Date></b:Departure>
          <b:Arrival><b:Iata>FRA</b:Iata><b:Date>02.06.2024 12:30</b:Date></b:Arrival>
        </b:OfferSegment>
      </b:Segments>
    </a:FlightData>
  </a:FlightData>
</SearchResult>`

func TestParse(t *testing.T) {
	variants, err := Parse([]byte(searchResponse))

	assert.NoError(t, err)
	assert.Len(t, variants, 2)

	t.Run("segments_sorted_by_departure", func(t *testing.T) {
		segments := variants[0].Flights[0].Segments

		assert.Len(t, segments, 2)
		assert.Equal(t, "ALA", segments[0].Dep.Airport)
		assert.Equal(t, "NQZ", segments[1].Dep.Airport)
		assert.True(t, segments[0].Dep.At.Before(segments[1].Dep.At))
	})

	t.Run("duration_spans_first_departure_to_last_arrival", func(t *testing.T) {
		flight := variants[0].Flights[0]

		// 01.06 10:30 -> 01.06 17:45
		want := int((7*time.Hour + 15*time.Minute).Seconds())
		assert.Equal(t, want, flight.Duration)
		assert.Positive(t, flight.Duration)
	})

	t.Run("flight_number_prefix_stripped", func(t *testing.T) {
		assert.Equal(t, "931", variants[0].Flights[0].Segments[0].FlightNumber)
		assert.Equal(t, "932", variants[0].Flights[0].Segments[1].FlightNumber)
	})

	t.Run("baggage_pieces_rendered", func(t *testing.T) {
		segments := variants[0].Flights[0].Segments

		// weight-based allowance is not reported
		assert.Nil(t, segments[0].Baggage)

		if assert.NotNil(t, segments[1].Baggage) {
			assert.Equal(t, "2PC", *segments[1].Baggage)
		}
	})

	t.Run("zero_pieces_means_no_allowance", func(t *testing.T) {
		assert.Nil(t, variants[1].Flights[0].Segments[0].Baggage)
	})

	t.Run("equipment_passed_through_verbatim", func(t *testing.T) {
		segments := variants[0].Flights[0].Segments

		if assert.NotNil(t, segments[1].Equipment) {
			assert.Equal(t, "Airbus A321", *segments[1].Equipment)
		}

		assert.Nil(t, segments[0].Equipment)
	})

	t.Run("pricing_quoted_in_eur", func(t *testing.T) {
		want := model.Pricing{
			Total:    "150.50",
			Base:     "150.50",
			Taxes:    "0.00",
			Currency: currency.EUR,
		}

		if diff := cmp.Diff(want, variants[0].Pricing); diff != "" {
			t.Fatalf("Pricing mismatch (-want +got):\n%s", diff)
		}

		assert.Equal(t, "99.00", variants[1].Pricing.Total)
	})

	t.Run("validating_airline_extracted", func(t *testing.T) {
		if assert.NotNil(t, variants[0].ValidatingAirline) {
			assert.Equal(t, "KC", *variants[0].ValidatingAirline)
		}
	})

	t.Run("not_refundable", func(t *testing.T) {
		assert.False(t, variants[0].Refundable)
	})
}

func TestParse_SegmentsWithoutRphShareOneFlight(t *testing.T) {
	response := `<SearchResult>
  <FlightData>
    <FlightData>
      <AdultPrice>10</AdultPrice>
      <Segments>
        <OfferSegment>
          <OperatingAirline>KC</OperatingAirline>
          <MarketingAirline>KC</MarketingAirline>
          <FlightNum>KC-1</FlightNum>
          <Departure><Iata>ALA</Iata><Date>01.06.2024 10:00</Date></Departure>
          <Arrival><Iata>NQZ</Iata><Date>01.06.2024 12:00</Date></Arrival>
        </OfferSegment>
        <OfferSegment>
          <OperatingAirline>KC</OperatingAirline>
          <MarketingAirline>KC</MarketingAirline>
          <FlightNum>KC-2</FlightNum>
          <Departure><Iata>NQZ</Iata><Date>01.06.2024 14:00</Date></Departure>
          <Arrival><Iata>FRA</Iata><Date>01.06.2024 18:00</Date></Arrival>
        </OfferSegment>
      </Segments>
    </FlightData>
  </FlightData>
</SearchResult>`

	variants, err := Parse([]byte(response))

	assert.NoError(t, err)
	assert.Len(t, variants, 1)
	assert.Len(t, variants[0].Flights, 1)
	assert.Len(t, variants[0].Flights[0].Segments, 2)
}

func TestParse_MalformedTimestampDropsOnlyThatOffer(t *testing.T) {
	response := `<SearchResult>
  <FlightData>
    <FlightData>
      <AdultPrice>10</AdultPrice>
      <Segments>
        <OfferSegment>
          <OperatingAirline>KC</OperatingAirline>
          <MarketingAirline>KC</MarketingAirline>
          <FlightNum>KC-1</FlightNum>
          <Departure><Iata>ALA</Iata><Date>garbage</Date></Departure>
          <Arrival><Iata>NQZ</Iata><Date>01.06.2024 12:00</Date></Arrival>
        </OfferSegment>
      </Segments>
    </FlightData>
    <FlightData>
      <AdultPrice>20</AdultPrice>
      <Segments>
        <OfferSegment>
          <OperatingAirline>KC</OperatingAirline>
          <MarketingAirline>KC</MarketingAirline>
          <FlightNum>KC-2</FlightNum>
          <Departure><Iata>ALA</Iata><Date>01.06.2024 10:00</Date></Departure>
          <Arrival><Iata>NQZ</Iata><Date>01.06.2024 12:00</Date></Arrival>
        </OfferSegment>
      </Segments>
    </FlightData>
  </FlightData>
</SearchResult>`

	variants, err := Parse([]byte(response))

	assert.NoError(t, err)
	assert.Len(t, variants, 1)
	assert.Equal(t, "20.00", variants[0].Pricing.Total)
}

func TestParse_MissingFareDegradesToEmptyPricing(t *testing.T) {
	response := `<SearchResult>
  <FlightData>
    <FlightData>
      <Segments>
        <OfferSegment>
          <OperatingAirline>KC</OperatingAirline>
          <MarketingAirline>KC</MarketingAirline>
          <FlightNum>KC-1</FlightNum>
          <Departure><Iata>ALA</Iata><Date>01.06.2024 10:00</Date></Departure>
          <Arrival><Iata>NQZ</Iata><Date>01.06.2024 12:00</Date></Arrival>
        </OfferSegment>
      </Segments>
    </FlightData>
  </FlightData>
</SearchResult>`

	variants, err := Parse([]byte(response))

	assert.NoError(t, err)
	assert.Len(t, variants, 1)
	assert.True(t, variants[0].Pricing.Empty())
}

func TestParse_UnparseableDocumentFails(t *testing.T) {
	_, err := Parse([]byte(`<SearchResult><FlightData>`))

	assert.Error(t, err)
	assert.True(t, errors.Is(err, providerutils.ErrDocumentParse))
}
