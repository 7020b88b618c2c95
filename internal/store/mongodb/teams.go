package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mtl/myhackx-api/internal/models"
	"github.com/mtl/myhackx-api/internal/store"
)

type TeamStore struct {
	c *mongo.Collection
}

func (s *TeamStore) Create(ctx context.Context, team *models.Team) error {
	_, err := s.c.InsertOne(ctx, team)
	return err
}

func (s *TeamStore) GetByID(ctx context.Context, id string) (*models.Team, error) {
	var t models.Team
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *TeamStore) ListByEvent(ctx context.Context, eventID string) ([]models.Team, error) {
	cur, err := s.c.Find(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var teams []models.Team
	if err := cur.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (s *TeamStore) Delete(ctx context.Context, id string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// AddMember appends via $addToSet keyed on the full member document, so a
// retried append of the same entry is a no-op. The uid guard in the filter
// rejects appends for a uid that is already on the roster with a different
// role or email.
func (s *TeamStore) AddMember(ctx context.Context, teamID string, member models.TeamMember) error {
	filter := bson.M{"_id": teamID, "members.uid": bson.M{"$ne": member.UID}}
	res, err := s.c.UpdateOne(ctx, filter, bson.M{"$addToSet": bson.M{"members": member}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing team from an already-present member.
		if _, err := s.GetByID(ctx, teamID); err != nil {
			return err
		}
		return nil
	}
	return nil
}

func (s *TeamStore) RemoveMember(ctx context.Context, teamID, uid string) error {
	res, err := s.c.UpdateByID(ctx, teamID, bson.M{"$pull": bson.M{"members": bson.M{"uid": uid}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *TeamStore) SetRoster(ctx context.Context, teamID string, members []models.TeamMember, leaderID string) error {
	res, err := s.c.UpdateByID(ctx, teamID, bson.M{"$set": bson.M{
		"members":   members,
		"leader_id": leaderID,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
