package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mtl/myhackx-api/internal/models"
	"github.com/mtl/myhackx-api/internal/store"
)

type NotificationStore struct {
	c *mongo.Collection
}

func (s *NotificationStore) Create(ctx context.Context, n *models.Notification) error {
	_, err := s.c.InsertOne(ctx, n)
	return err
}

func (s *NotificationStore) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	var n models.Notification
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (s *NotificationStore) ListByRecipient(ctx context.Context, email string) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"recipient_email": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ns []models.Notification
	if err := cur.All(ctx, &ns); err != nil {
		return nil, err
	}
	return ns, nil
}

func (s *NotificationStore) MarkRead(ctx context.Context, id string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
