package repository

import (
	"context"
	"fmt"
	"testing"

	"corneradvisor/config/database"
	"corneradvisor/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestServiceRepositoryAgainstMongo(t *testing.T) {
	db := database.TestDatabase(t)
	repo := NewServiceRepository(db.Collection(database.ServicesCollection))
	ctx := context.Background()

	var first *store.InsertAck
	for i := 0; i < 7; i++ {
		ack, err := repo.Insert(ctx, store.Document{{Key: "name", Value: fmt.Sprintf("svc-%d", i)}})
		require.NoError(t, err)
		if first == nil {
			first = ack
		}
	}

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	page, err := repo.List(ctx, 5, 5)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	empty, err := repo.List(ctx, 50, 5)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	id, ok := store.ParseID(first.InsertedID)
	require.True(t, ok)
	doc, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "svc-0", doc.String("name"))

	_, err = repo.FindByID(ctx, bson.NewObjectID())
	assert.ErrorIs(t, err, store.ErrNotFound)
}
