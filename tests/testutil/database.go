package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mtl/myhackx-api/internal/database"
	"github.com/mtl/myhackx-api/internal/store"
	"github.com/mtl/myhackx-api/internal/store/mongodb"
)

// TestDB wraps a test database connection with cleanup helpers
type TestDB struct {
	DB        *database.DB
	Stores    store.Stores
	Container testcontainers.Container
}

// SetupTestDB creates a MongoDB testcontainer and returns a connected TestDB
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor: wait.ForLog("Waiting for connections").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start mongo container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	uri := fmt.Sprintf("mongodb://%s:%s", host, port.Port())

	db, err := database.New(ctx, uri, "myhackx_test")
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.EnsureIndexes(ctx); err != nil {
		t.Fatalf("failed to create indexes: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close(ctx)
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		DB:        db,
		Stores:    mongodb.NewStores(db.Database),
		Container: container,
	}
}

// CleanCollections empties all collections to reset state between tests
func (tdb *TestDB) CleanCollections(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	collections := []string{
		"users",
		"events",
		"teams",
		"team_invitations",
		"notifications",
		"refresh_tokens",
		"password_resets",
	}

	for _, coll := range collections {
		if _, err := tdb.DB.Database.Collection(coll).DeleteMany(ctx, bson.D{}); err != nil {
			t.Fatalf("failed to clean collection %s: %v", coll, err)
		}
	}
}
