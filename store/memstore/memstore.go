// Package memstore is an in-memory stand-in for a MongoDB collection. It
// implements the catalog and review store interfaces with the same
// matching rules the repositories send to the database, for use in tests.
package memstore

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"

	"corneradvisor/store"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrNegativeSkip matches the server's rejection of a negative skip.
var ErrNegativeSkip = errors.New("skip must be non-negative")

type Collection struct {
	mu   sync.Mutex
	docs []store.Document

	// Err, when set, is returned by every operation.
	Err error
	// Calls counts operations that reached the collection.
	Calls int
}

func New(docs ...store.Document) *Collection {
	c := &Collection{}
	for _, d := range docs {
		c.docs = append(c.docs, withID(d))
	}
	return c
}

func (c *Collection) List(ctx context.Context, skip, limit int64) ([]store.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.enter(); err != nil {
		return nil, err
	}
	if skip < 0 {
		return nil, ErrNegativeSkip
	}

	out := []store.Document{}
	for i := skip; i < int64(len(c.docs)) && int64(len(out)) < limit; i++ {
		out = append(out, clone(c.docs[i]))
	}
	return out, nil
}

func (c *Collection) Count(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.enter(); err != nil {
		return 0, err
	}
	return int64(len(c.docs)), nil
}

func (c *Collection) FindByID(ctx context.Context, id bson.ObjectID) (store.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.enter(); err != nil {
		return nil, err
	}
	if i := c.indexOf(id); i >= 0 {
		return clone(c.docs[i]), nil
	}
	return nil, store.ErrNotFound
}

func (c *Collection) FindByServiceID(ctx context.Context, serviceID string) ([]store.Document, error) {
	return c.filter(func(d store.Document) bool {
		v, ok := d.Lookup("serviceId")
		return ok && v == serviceID
	})
}

func (c *Collection) FindByAuthorEmail(ctx context.Context, email string) ([]store.Document, error) {
	return c.filter(func(d store.Document) bool {
		v, ok := d.Lookup("author", "email")
		return ok && v == email
	})
}

func (c *Collection) Insert(ctx context.Context, doc store.Document) (*store.InsertAck, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.enter(); err != nil {
		return nil, err
	}
	doc = withID(clone(doc))
	c.docs = append(c.docs, doc)
	return &store.InsertAck{Acknowledged: true, InsertedID: doc.ID()}, nil
}

// Update applies partial like $set and returns the record as it was before.
// Dotted keys are not expanded.
func (c *Collection) Update(ctx context.Context, id bson.ObjectID, partial store.Document) (*store.UpdateAck, store.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.enter(); err != nil {
		return nil, nil, err
	}

	i := c.indexOf(id)
	if i < 0 {
		return &store.UpdateAck{Acknowledged: true}, nil, nil
	}
	before := clone(c.docs[i])
	doc := clone(c.docs[i])
	modified := false
	for _, e := range partial {
		if strings.Contains(e.Key, ".") {
			continue
		}
		found := false
		for j := range doc {
			if doc[j].Key == e.Key {
				found = true
				if !reflect.DeepEqual(doc[j].Value, e.Value) {
					doc[j].Value = e.Value
					modified = true
				}
				break
			}
		}
		if !found {
			doc = append(doc, e)
			modified = true
		}
	}
	c.docs[i] = doc

	ack := &store.UpdateAck{Acknowledged: true, MatchedCount: 1}
	if modified {
		ack.ModifiedCount = 1
	}
	return ack, before, nil
}

// Delete removes the record and returns it.
func (c *Collection) Delete(ctx context.Context, id bson.ObjectID) (*store.DeleteAck, store.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.enter(); err != nil {
		return nil, nil, err
	}

	i := c.indexOf(id)
	if i < 0 {
		return &store.DeleteAck{Acknowledged: true}, nil, nil
	}
	removed := c.docs[i]
	c.docs = append(c.docs[:i], c.docs[i+1:]...)
	return &store.DeleteAck{Acknowledged: true, DeletedCount: 1}, removed, nil
}

func (c *Collection) filter(match func(store.Document) bool) ([]store.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.enter(); err != nil {
		return nil, err
	}

	out := []store.Document{}
	for _, d := range c.docs {
		if match(d) {
			out = append(out, clone(d))
		}
	}
	return out, nil
}

func (c *Collection) enter() error {
	c.Calls++
	return c.Err
}

func (c *Collection) indexOf(id bson.ObjectID) int {
	for i, d := range c.docs {
		if v, ok := d.Lookup("_id"); ok && v == id {
			return i
		}
	}
	return -1
}

func withID(d store.Document) store.Document {
	if _, ok := d.Lookup("_id"); ok {
		return d
	}
	return append(store.Document{{Key: "_id", Value: bson.NewObjectID()}}, d...)
}

func clone(d store.Document) store.Document {
	return append(store.Document(nil), d...)
}
