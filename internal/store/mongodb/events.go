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

type EventStore struct {
	c *mongo.Collection
}

func (s *EventStore) Put(ctx context.Context, event *models.HackathonEvent) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": event.ID}, event, opts)
	return err
}

func (s *EventStore) GetByID(ctx context.Context, id string) (*models.HackathonEvent, error) {
	var e models.HackathonEvent
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (s *EventStore) List(ctx context.Context, filter store.EventFilter) ([]models.HackathonEvent, error) {
	q := bson.M{}
	if filter.Status != "" {
		q["status"] = filter.Status
	}
	if filter.Location != "" {
		q["location"] = filter.Location
	}

	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})
	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.HackathonEvent
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EventStore) Delete(ctx context.Context, id string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *EventStore) LinkTeam(ctx context.Context, eventID, teamID string) error {
	res, err := s.c.UpdateByID(ctx, eventID, bson.M{"$addToSet": bson.M{"teams": teamID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *EventStore) UnlinkTeam(ctx context.Context, eventID, teamID string) error {
	res, err := s.c.UpdateByID(ctx, eventID, bson.M{"$pull": bson.M{"teams": teamID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
