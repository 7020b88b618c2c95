package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the query paths rely on. Each call is
// idempotent; Mongo ignores creates for indexes that already exist.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"events": {
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "location", Value: 1}}},
		},
		"teams": {
			{Keys: bson.D{{Key: "event_id", Value: 1}}},
			{Keys: bson.D{{Key: "members.uid", Value: 1}}},
		},
		"team_invitations": {
			{Keys: bson.D{{Key: "invitee_email", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "team_id", Value: 1}}},
		},
		"notifications": {
			{Keys: bson.D{{Key: "recipient_email", Value: 1}, {Key: "timestamp", Value: -1}}},
		},
		"refresh_tokens": {
			{Keys: bson.D{{Key: "token_hash", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
		},
		"password_resets": {
			{Keys: bson.D{{Key: "token_hash", Value: 1}}},
			{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
		},
	}

	for coll, models := range specs {
		if _, err := db.Database.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", coll, err)
		}
	}
	return nil
}
