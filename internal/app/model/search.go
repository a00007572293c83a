package model

import (
	"time"

	"github.com/MSMikl/aviata-test/internal/pkg/currency"
)

// SearchStatus is the aggregation lifecycle of a search. The only
// transition is PENDING -> COMPLETED.
type SearchStatus string

const (
	StatusPending   SearchStatus = "PENDING"
	StatusCompleted SearchStatus = "COMPLETED"
)

// Search is the persisted search record. Items is append-only while
// providers are running; offers from different providers are never
// deduplicated.
type Search struct {
	ID     string       `bson:"_id" json:"search_id"`
	Status SearchStatus `bson:"status" json:"status"`
	Items  []Variant    `bson:"items" json:"items"`
}

// Variant is one priced offer. DisplayPrice is computed on the read path
// for the requested currency and is never persisted.
type Variant struct {
	Flights           []Flight `bson:"flights" json:"flights"`
	Refundable        bool     `bson:"refundable" json:"refundable"`
	ValidatingAirline *string  `bson:"validating_airline" json:"validating_airline"`
	Pricing           Pricing  `bson:"pricing" json:"pricing"`
	DisplayPrice      Price    `bson:"-" json:"price"`
}

// Flight groups consecutive segments under one leg reference.
// Duration is last arrival minus first departure, in whole seconds.
type Flight struct {
	Duration int       `bson:"duration" json:"duration"`
	Segments []Segment `bson:"segments" json:"segments"`
}

type Segment struct {
	OperatingAirline string      `bson:"operating_airline" json:"operating_airline"`
	MarketingAirline string      `bson:"marketing_airline" json:"marketing_airline"`
	FlightNumber     string      `bson:"flight_number" json:"flight_number"`
	Equipment        *string     `bson:"equipment" json:"equipment"`
	Dep              AirportTime `bson:"dep" json:"dep"`
	Arr              AirportTime `bson:"arr" json:"arr"`
	Baggage          *string     `bson:"baggage" json:"baggage"`
}

type AirportTime struct {
	At      time.Time `bson:"at" json:"at"`
	Airport string    `bson:"airport" json:"airport"`
}

// Pricing is the fare breakdown as reported by the provider. Amounts are
// decimal strings with exactly two fractional digits. A zero-value Pricing
// means the upstream offer carried no fare.
type Pricing struct {
	Total    string            `bson:"total" json:"total"`
	Base     string            `bson:"base" json:"base"`
	Taxes    string            `bson:"taxes" json:"taxes"`
	Currency currency.Currency `bson:"currency" json:"currency"`
}

// Empty reports whether the provider supplied no fare for the offer.
func (p Pricing) Empty() bool {
	return p.Total == ""
}

// Price is the request-scoped display price in the requested currency.
type Price struct {
	Amount   string            `json:"amount"`
	Currency currency.Currency `json:"currency"`
}
