// Package mongodb implements the store interfaces on top of a MongoDB
// database, one collection per record type.
package mongodb

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mtl/myhackx-api/internal/store"
)

// NewStores wires every collection-backed store against db.
func NewStores(db *mongo.Database) store.Stores {
	return store.Stores{
		Users:         &UserStore{c: db.Collection("users")},
		Events:        &EventStore{c: db.Collection("events")},
		Teams:         &TeamStore{c: db.Collection("teams")},
		Invitations:   &InvitationStore{c: db.Collection("team_invitations")},
		Notifications: &NotificationStore{c: db.Collection("notifications")},
		Tokens: &TokenStore{
			refresh: db.Collection("refresh_tokens"),
			resets:  db.Collection("password_resets"),
		},
	}
}
