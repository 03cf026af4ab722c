// internal/app/store/memberships/membershipstore.go
package membershipstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("group_memberships")}
}

// ErrDuplicateMembership is returned when (group, user) already exists.
// Join treats it as success: joining twice is idempotent.
var ErrDuplicateMembership = errors.New("user is already a member of this group")

// Add creates a membership document. The unique (group_id, user_id)
// index makes the operation race-safe: two concurrent joins produce one
// document regardless of interleaving.
func (s *Store) Add(ctx context.Context, groupID, userID primitive.ObjectID) error {
	doc := bson.M{
		"group_id":   groupID,
		"user_id":    userID,
		"created_at": time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateMembership
		}
		return err
	}
	return nil
}

// Exists reports whether userID is a member of groupID.
func (s *Store) Exists(ctx context.Context, groupID, userID primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"group_id": groupID, "user_id": userID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GroupIDsForUser returns the IDs of every group the user belongs to,
// oldest membership first.
func (s *Store) GroupIDsForUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		GroupID primitive.ObjectID `bson:"group_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.GroupID)
	}
	return ids, nil
}

// CountForGroup returns the member count of a group.
func (s *Store) CountForGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"group_id": groupID})
}
