package service

import (
	"context"
	"encoding/json"
	"errors"

	"corneradvisor/internal/review/model"
	"corneradvisor/pkg/logger"
	"corneradvisor/socket"
	"corneradvisor/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

// ErrEmptyUpdate is returned when a partial update has no settable fields.
var ErrEmptyUpdate = errors.New("update document has no fields to set")

type ReviewStore interface {
	FindByServiceID(ctx context.Context, serviceID string) ([]store.Document, error)
	FindByAuthorEmail(ctx context.Context, email string) ([]store.Document, error)
	FindByID(ctx context.Context, id bson.ObjectID) (store.Document, error)
	Insert(ctx context.Context, doc store.Document) (*store.InsertAck, error)
	// Update returns the record as it was before the update.
	Update(ctx context.Context, id bson.ObjectID, partial store.Document) (*store.UpdateAck, store.Document, error)
	// Delete returns the removed record.
	Delete(ctx context.Context, id bson.ObjectID) (*store.DeleteAck, store.Document, error)
}

// EventPublisher receives review changes after they are written. It must not block.
type EventPublisher interface {
	Publish(ev socket.Event)
}

type ReviewService struct {
	Repo   ReviewStore
	Events EventPublisher
}

func NewReviewService(repo ReviewStore, events EventPublisher) *ReviewService {
	return &ReviewService{Repo: repo, Events: events}
}

func (s *ReviewService) ListByService(ctx context.Context, serviceID string) ([]store.Document, error) {
	return s.Repo.FindByServiceID(ctx, serviceID)
}

func (s *ReviewService) ListByAuthorEmail(ctx context.Context, email string) ([]store.Document, error) {
	return s.Repo.FindByAuthorEmail(ctx, email)
}

// GetReview returns store.ErrNotFound for malformed ids without touching the store.
func (s *ReviewService) GetReview(ctx context.Context, id string) (store.Document, error) {
	oid, ok := store.ParseID(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return s.Repo.FindByID(ctx, oid)
}

func (s *ReviewService) CreateReview(ctx context.Context, doc store.Document) (*store.InsertAck, error) {
	ack, err := s.Repo.Insert(ctx, doc)
	if err != nil {
		return nil, err
	}

	stored := doc
	if _, ok := doc.Lookup("_id"); !ok {
		stored = append(store.Document{{Key: "_id", Value: ack.InsertedID}}, doc...)
	}
	s.publish(socket.ReviewCreatedType, model.RefOf(stored), stored)
	return ack, nil
}

// UpdateReview merges partial into the review. A malformed id matches
// nothing, so it yields an empty acknowledgment without a store call.
func (s *ReviewService) UpdateReview(ctx context.Context, id string, partial store.Document) (*store.UpdateAck, error) {
	partial = partial.Without("_id")
	if len(partial) == 0 {
		return nil, ErrEmptyUpdate
	}

	oid, ok := store.ParseID(id)
	if !ok {
		return &store.UpdateAck{Acknowledged: true}, nil
	}

	ack, before, err := s.Repo.Update(ctx, oid, partial)
	if err != nil {
		return nil, err
	}
	if ack.MatchedCount > 0 {
		// Routed by the service the review belonged to before the change.
		s.publish(socket.ReviewUpdatedType, model.RefOf(before), partial)
	}
	return ack, nil
}

// DeleteReview removes the review. A malformed id deletes nothing.
func (s *ReviewService) DeleteReview(ctx context.Context, id string) (*store.DeleteAck, error) {
	oid, ok := store.ParseID(id)
	if !ok {
		return &store.DeleteAck{Acknowledged: true}, nil
	}

	ack, removed, err := s.Repo.Delete(ctx, oid)
	if err != nil {
		return nil, err
	}
	if ack.DeletedCount > 0 {
		s.publish(socket.ReviewDeletedType, model.RefOf(removed), removed)
	}
	return ack, nil
}

func (s *ReviewService) publish(eventType string, ref model.ReviewRef, doc store.Document) {
	if s.Events == nil {
		return
	}
	ev := socket.Event{Type: eventType, ServiceID: ref.ServiceID, ReviewID: ref.ID}
	if doc != nil {
		payload, err := json.Marshal(doc)
		if err != nil {
			logger.Sugar.Errorf("Failed to encode %s payload for review %s: %v", eventType, ref.ID, err)
			return
		}
		ev.Payload = payload
	}
	logger.Log.Debug("Publishing review event",
		zap.String("type", eventType),
		zap.String("review_id", ref.ID),
		zap.String("service_id", ref.ServiceID),
		zap.String("author_email", ref.AuthorEmail),
	)
	s.Events.Publish(ev)
}
