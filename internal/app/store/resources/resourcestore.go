// internal/app/store/resources/resourcestore.go
package resourcestore

import (
	"context"
	"time"

	"github.com/studysync/studysync/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("resources")}
}

// Add inserts a catalog entry. The type has already been resolved by the
// caller (explicit choice or URL inference); it is stored as-is and
// never recomputed.
func (s *Store) Add(ctx context.Context, groupID, addedBy primitive.ObjectID, title, url, typ string) (models.Resource, error) {
	r := models.Resource{
		ID:        primitive.NewObjectID(),
		GroupID:   groupID,
		Title:     title,
		URL:       url,
		Type:      typ,
		AddedBy:   addedBy,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.Resource{}, err
	}
	return r, nil
}

// ListByGroup returns a group's catalog in creation order.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Resource, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"group_id": groupID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Resource{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
