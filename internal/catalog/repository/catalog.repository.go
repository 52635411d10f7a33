package repository

import (
	"context"
	"errors"

	"corneradvisor/pkg/logger"
	"corneradvisor/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ServiceRepository struct {
	Coll *mongo.Collection
}

func NewServiceRepository(coll *mongo.Collection) *ServiceRepository {
	return &ServiceRepository{Coll: coll}
}

// List returns up to limit records after skip, in the collection's natural order.
func (r *ServiceRepository) List(ctx context.Context, skip, limit int64) ([]store.Document, error) {
	cursor, err := r.Coll.Find(ctx, bson.D{}, options.Find().SetSkip(skip).SetLimit(limit))
	if err != nil {
		logger.Sugar.Errorf("Failed to list services (skip=%d, limit=%d): %v", skip, limit, err)
		return nil, err
	}

	services := []store.Document{}
	if err := cursor.All(ctx, &services); err != nil {
		logger.Sugar.Errorf("Failed to decode services: %v", err)
		return nil, err
	}
	return services, nil
}

func (r *ServiceRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.Coll.EstimatedDocumentCount(ctx)
	if err != nil {
		logger.Sugar.Errorf("Failed to count services: %v", err)
	}
	return n, err
}

func (r *ServiceRepository) FindByID(ctx context.Context, id bson.ObjectID) (store.Document, error) {
	var doc store.Document
	err := r.Coll.FindOne(ctx, store.IDFilter(id)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get service %s: %v", id.Hex(), err)
		return nil, err
	}
	return doc, nil
}

func (r *ServiceRepository) Insert(ctx context.Context, doc store.Document) (*store.InsertAck, error) {
	res, err := r.Coll.InsertOne(ctx, doc)
	if err != nil {
		logger.Sugar.Errorf("Failed to create service: %v", err)
		return nil, err
	}
	return store.NewInsertAck(res), nil
}
