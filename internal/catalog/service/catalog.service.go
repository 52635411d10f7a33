package service

import (
	"context"

	"corneradvisor/internal/catalog/model"
	"corneradvisor/store"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ServiceStore is the storage the catalog needs. The MongoDB
// implementation lives in the repository package.
type ServiceStore interface {
	List(ctx context.Context, skip, limit int64) ([]store.Document, error)
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id bson.ObjectID) (store.Document, error)
	Insert(ctx context.Context, doc store.Document) (*store.InsertAck, error)
}

type CatalogService struct {
	Repo ServiceStore
}

func NewCatalogService(repo ServiceStore) *CatalogService {
	return &CatalogService{Repo: repo}
}

// ListServices returns one page of services. The page total is computed
// over the whole collection.
func (s *CatalogService) ListServices(ctx context.Context, page model.Page) (*model.ServiceList, error) {
	services, err := s.Repo.List(ctx, page.Skip(), page.Size)
	if err != nil {
		return nil, err
	}
	count, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if services == nil {
		services = []store.Document{}
	}
	return &model.ServiceList{
		Data: services,
		Pagination: model.Pagination{
			Total:   model.TotalPages(count, page.Size),
			Current: page.Number,
		},
	}, nil
}

// GetService returns store.ErrNotFound for malformed ids without touching the store.
func (s *CatalogService) GetService(ctx context.Context, id string) (store.Document, error) {
	oid, ok := store.ParseID(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return s.Repo.FindByID(ctx, oid)
}

func (s *CatalogService) CreateService(ctx context.Context, doc store.Document) (*store.InsertAck, error) {
	return s.Repo.Insert(ctx, doc)
}
