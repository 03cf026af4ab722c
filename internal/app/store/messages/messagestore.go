// internal/app/store/messages/messagestore.go
package messagestore

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
	return &Store{c: db.Collection("messages")}
}

// Append inserts a message, stamping created_at at write time. Messages
// are never updated or deleted.
func (s *Store) Append(ctx context.Context, groupID, senderID primitive.ObjectID, senderName, text string) (models.Message, error) {
	m := models.Message{
		ID:         primitive.NewObjectID(),
		GroupID:    groupID,
		SenderID:   senderID,
		SenderName: senderName,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Message{}, err
	}
	return m, nil
}

// ListByGroup returns the full message log for a group sorted by
// (created_at, _id). The _id tiebreak makes the order total: any two
// concurrent readers see the same sequence even while writers append.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Message, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"group_id": groupID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	msgs := []models.Message{}
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}
