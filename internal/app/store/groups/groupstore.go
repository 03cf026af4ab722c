// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/google/uuid"
	"github.com/studysync/studysync/internal/app/system/joincode"
	"github.com/studysync/studysync/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// createRetries bounds join-code regeneration on duplicate-key
// collisions. With a 32-character alphabet at length 6 a second
// collision in a row means something is wrong with the store.
const createRetries = 5

type Store struct {
	c       *mongo.Collection
	codeLen int
}

var ErrCodeSpaceExhausted = errors.New("could not generate a unique join code")

func New(db *mongo.Database, codeLen int) *Store {
	if codeLen <= 0 {
		codeLen = joincode.DefaultLength
	}
	return &Store{c: db.Collection("groups"), codeLen: codeLen}
}

// GetByID loads a group by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// GetByJoinCode resolves a join code (case-insensitive: codes are stored
// uppercase, the lookup uppercases the input).
func (s *Store) GetByJoinCode(ctx context.Context, code string) (models.Group, error) {
	var g models.Group
	err := s.c.FindOne(ctx, bson.M{"join_code": strings.ToUpper(strings.TrimSpace(code))}).Decode(&g)
	if err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// GetByInviteToken resolves an opaque invite token.
func (s *Store) GetByInviteToken(ctx context.Context, token string) (models.Group, error) {
	var g models.Group
	err := s.c.FindOne(ctx, bson.M{"invite_token": strings.TrimSpace(token)}).Decode(&g)
	if err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// Create inserts a new group with a fresh join code and invite token.
// Join-code uniqueness is serialized by the unique index: on a
// duplicate-key insert the code is regenerated and the insert retried.
func (s *Store) Create(ctx context.Context, name, description string, createdBy primitive.ObjectID) (models.Group, error) {
	now := time.Now().UTC()
	g := models.Group{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		InviteToken: uuid.NewString(),
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for attempt := 0; attempt < createRetries; attempt++ {
		code, err := joincode.New(s.codeLen)
		if err != nil {
			return models.Group{}, err
		}
		g.ID = primitive.NewObjectID()
		g.JoinCode = code

		_, err = s.c.InsertOne(ctx, g)
		if err == nil {
			return g, nil
		}
		if !wafflemongo.IsDup(err) {
			return models.Group{}, err
		}
	}
	return models.Group{}, ErrCodeSpaceExhausted
}

// ListByIDs returns the groups with the given IDs in creation-time
// ascending order. The order is stable across calls so polling clients
// and tests see a deterministic sequence.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Group, error) {
	if len(ids) == 0 {
		return []models.Group{}, nil
	}
	cur, err := s.c.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	groups := []models.Group{}
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}
