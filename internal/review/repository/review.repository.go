package repository

import (
	"context"
	"errors"

	"corneradvisor/internal/review/model"
	"corneradvisor/pkg/logger"
	"corneradvisor/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ReviewRepository struct {
	Coll *mongo.Collection
}

func NewReviewRepository(coll *mongo.Collection) *ReviewRepository {
	return &ReviewRepository{Coll: coll}
}

func (r *ReviewRepository) FindByServiceID(ctx context.Context, serviceID string) ([]store.Document, error) {
	reviews, err := r.find(ctx, store.StringEquals(model.FieldServiceID, serviceID))
	if err != nil {
		logger.Sugar.Errorf("Failed to get reviews for service %s: %v", serviceID, err)
	}
	return reviews, err
}

func (r *ReviewRepository) FindByAuthorEmail(ctx context.Context, email string) ([]store.Document, error) {
	reviews, err := r.find(ctx, store.StringEquals(model.FieldAuthorEmail, email))
	if err != nil {
		logger.Sugar.Errorf("Failed to get reviews by author %s: %v", email, err)
	}
	return reviews, err
}

func (r *ReviewRepository) FindByID(ctx context.Context, id bson.ObjectID) (store.Document, error) {
	var doc store.Document
	err := r.Coll.FindOne(ctx, store.IDFilter(id)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get review %s: %v", id.Hex(), err)
		return nil, err
	}
	return doc, nil
}

func (r *ReviewRepository) Insert(ctx context.Context, doc store.Document) (*store.InsertAck, error) {
	res, err := r.Coll.InsertOne(ctx, doc)
	if err != nil {
		logger.Sugar.Errorf("Failed to create review: %v", err)
		return nil, err
	}
	return store.NewInsertAck(res), nil
}

// Update merges partial into the record with $set; fields not named in
// partial are left alone. It returns the record as it was before the
// update, or nil when no record has the id.
func (r *ReviewRepository) Update(ctx context.Context, id bson.ObjectID, partial store.Document) (*store.UpdateAck, store.Document, error) {
	update := bson.D{{Key: "$set", Value: bson.D(partial)}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var before store.Document
	err := r.Coll.FindOneAndUpdate(ctx, store.IDFilter(id), update, opts).Decode(&before)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &store.UpdateAck{Acknowledged: true}, nil, nil
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to update review %s: %v", id.Hex(), err)
		return nil, nil, err
	}

	ack := &store.UpdateAck{Acknowledged: true, MatchedCount: 1}
	if before.Changes(partial) {
		ack.ModifiedCount = 1
	}
	return ack, before, nil
}

// Delete removes the record and returns it, or nil when no record has the id.
func (r *ReviewRepository) Delete(ctx context.Context, id bson.ObjectID) (*store.DeleteAck, store.Document, error) {
	var removed store.Document
	err := r.Coll.FindOneAndDelete(ctx, store.IDFilter(id)).Decode(&removed)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &store.DeleteAck{Acknowledged: true}, nil, nil
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to delete review %s: %v", id.Hex(), err)
		return nil, nil, err
	}
	return &store.DeleteAck{Acknowledged: true, DeletedCount: 1}, removed, nil
}

func (r *ReviewRepository) find(ctx context.Context, filter bson.D) ([]store.Document, error) {
	cursor, err := r.Coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	reviews := []store.Document{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
