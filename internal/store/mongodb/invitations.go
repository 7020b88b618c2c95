package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mtl/myhackx-api/internal/models"
	"github.com/mtl/myhackx-api/internal/store"
)

type InvitationStore struct {
	c *mongo.Collection
}

func (s *InvitationStore) Create(ctx context.Context, inv *models.TeamInvitation) error {
	_, err := s.c.InsertOne(ctx, inv)
	return err
}

func (s *InvitationStore) GetByID(ctx context.Context, id string) (*models.TeamInvitation, error) {
	var inv models.TeamInvitation
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&inv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (s *InvitationStore) ListPendingByInvitee(ctx context.Context, email string) ([]models.TeamInvitation, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"invitee_email": email,
		"status":        models.InvitationPending,
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var invs []models.TeamInvitation
	if err := cur.All(ctx, &invs); err != nil {
		return nil, err
	}
	return invs, nil
}

// TransitionFromPending is a conditional update: the status filter makes two
// racing accept/decline calls resolve to a single winner.
func (s *InvitationStore) TransitionFromPending(ctx context.Context, id, to string) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.InvitationPending},
		bson.M{"$set": bson.M{"status": to}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
