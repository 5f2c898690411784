package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Collection names.
const (
	usersCollection       = "users"
	messagesCollection    = "messages"
	mutesCollection       = "mutes"
	rolesCollection       = "roles"
	assignmentsCollection = "role_assignments"
	auditCollection       = "moderation_log"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// EnsureIndexes creates the unique indexes the domain invariants rely on:
// one account per username, one mute per (province, username), one role name
// per province, and one assignment per (username, role).
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	specs := []struct {
		coll  string
		model mongo.IndexModel
	}{
		{usersCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: unique,
		}},
		{mutesCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "province", Value: 1}, {Key: "username", Value: 1}},
			Options: unique,
		}},
		{rolesCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "province", Value: 1}, {Key: "name", Value: 1}},
			Options: unique,
		}},
		{assignmentsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "username", Value: 1}, {Key: "role_id", Value: 1}},
			Options: unique,
		}},
		{messagesCollection, mongo.IndexModel{
			Keys: bson.D{{Key: "province", Value: 1}, {Key: "created_at", Value: 1}},
		}},
	}

	for _, s := range specs {
		if _, err := db.Collection(s.coll).Indexes().CreateOne(ctx, s.model); err != nil {
			return fmt.Errorf("ensure index on %s: %w", s.coll, err)
		}
	}
	return nil
}
