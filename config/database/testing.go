package database

import (
	"context"
	"os"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// TestURIEnv names the variable that enables tests against a real MongoDB.
const TestURIEnv = "MONGODB_TEST_URI"

// TestDatabase connects to the server in MONGODB_TEST_URI and returns a
// fresh database that is dropped when the test ends. The test is skipped
// when the variable is unset.
func TestDatabase(t testing.TB) *mongo.Database {
	t.Helper()
	uri := os.Getenv(TestURIEnv)
	if uri == "" {
		t.Skipf("%s not set", TestURIEnv)
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := Ping(context.Background(), client); err != nil {
		t.Fatalf("ping: %v", err)
	}

	db := client.Database("corneradvisor_test_" + bson.NewObjectID().Hex())
	t.Cleanup(func() {
		ctx := context.Background()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}
