// Package repository implements the persistent document store for search
// records and the exchange rate snapshot. Both live in one collection;
// the rate snapshot is a singleton document under a fixed id.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/MSMikl/aviata-test/internal/app/model"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "searches"

type SearchRepository struct {
	collection *mongo.Collection
}

func NewSearchRepository(db *mongo.Database) *SearchRepository {
	return &SearchRepository{
		collection: db.Collection(collectionName),
	}
}

// Create persists a new search in its initial state and returns it. The
// id is assigned here and never changes.
func (r *SearchRepository) Create(ctx context.Context) (model.Search, error) {
	search := model.Search{
		ID:     uuid.NewString(),
		Status: model.StatusPending,
		Items:  []model.Variant{},
	}

	if _, err := r.collection.InsertOne(ctx, search); err != nil {
		return model.Search{}, fmt.Errorf("insert search: %w", err)
	}

	return search, nil
}

// Load returns the search record, or nil when the id is unknown.
func (r *SearchRepository) Load(ctx context.Context, searchID string) (*model.Search, error) {
	var search model.Search

	err := r.collection.FindOne(ctx, bson.M{"_id": searchID}).Decode(&search)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("load search: %w", err)
	}

	return &search, nil
}

// AppendItems pushes variants onto the search's item list as one atomic
// array append. Concurrent appenders from different provider tasks need
// no coordination beyond this.
func (r *SearchRepository) AppendItems(ctx context.Context, searchID string, items []model.Variant) error {
	update := bson.M{"$push": bson.M{"items": bson.M{"$each": items}}}

	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": searchID}, update); err != nil {
		return fmt.Errorf("append items: %w", err)
	}

	return nil
}

// SetStatus writes the status scalar atomically.
func (r *SearchRepository) SetStatus(ctx context.Context, searchID string, status model.SearchStatus) error {
	update := bson.M{"$set": bson.M{"status": status}}

	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": searchID}, update); err != nil {
		return fmt.Errorf("set status: %w", err)
	}

	return nil
}
