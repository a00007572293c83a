package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/MSMikl/aviata-test/internal/pkg/currency"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ratesDocumentID = "rates"

type RatesRepository struct {
	collection *mongo.Collection
}

func NewRatesRepository(db *mongo.Database) *RatesRepository {
	return &RatesRepository{
		collection: db.Collection(collectionName),
	}
}

// LoadRates returns the current snapshot, or nil when no refresh has
// happened yet.
func (r *RatesRepository) LoadRates(ctx context.Context) (currency.RateSnapshot, error) {
	var doc bson.M

	err := r.collection.FindOne(ctx, bson.M{"_id": ratesDocumentID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("load rates: %w", err)
	}

	rates := currency.RateSnapshot{}

	for key, value := range doc {
		if key == "_id" {
			continue
		}

		if rate, ok := value.(string); ok {
			rates[currency.Currency(key)] = rate
		}
	}

	return rates, nil
}

// UpsertRates replaces the snapshot document wholesale, creating it on the
// first refresh. No rate history is kept.
func (r *RatesRepository) UpsertRates(ctx context.Context, rates currency.RateSnapshot) error {
	doc := bson.M{"_id": ratesDocumentID}
	for code, rate := range rates {
		doc[string(code)] = rate
	}

	opts := options.FindOneAndReplace().SetUpsert(true)

	err := r.collection.FindOneAndReplace(ctx, bson.M{"_id": ratesDocumentID}, doc, opts).Err()
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("upsert rates: %w", err)
	}

	return nil
}
