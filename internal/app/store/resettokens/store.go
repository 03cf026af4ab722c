// internal/app/store/resettokens/store.go
package resettokens

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/studysync/studysync/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultExpiry is how long a reset token stays valid.
const DefaultExpiry = time.Hour

// ErrNotFound is returned when a token is unknown or expired.
var ErrNotFound = errors.New("reset token not found or expired")

// Store manages pending password-reset tokens. Expired documents are
// reaped by the TTL index on expires_at; lookups also filter on expiry
// so a token never validates during the TTL monitor's sweep lag.
type Store struct {
	c      *mongo.Collection
	expiry time.Duration
}

// New creates a Store. If expiry is 0 or negative, DefaultExpiry is used.
func New(db *mongo.Database, expiry time.Duration) *Store {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Store{c: db.Collection("password_resets"), expiry: expiry}
}

// Create issues a fresh token for the user, replacing any outstanding
// one so only the latest emailed link works.
func (s *Store) Create(ctx context.Context, userID primitive.ObjectID, email string) (models.PasswordReset, error) {
	if _, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return models.PasswordReset{}, err
	}

	now := time.Now().UTC()
	pr := models.PasswordReset{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Email:     email,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(s.expiry),
		CreatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, pr); err != nil {
		return models.PasswordReset{}, err
	}
	return pr, nil
}

// Consume validates a token and deletes it so it is single-use.
func (s *Store) Consume(ctx context.Context, token string) (models.PasswordReset, error) {
	var pr models.PasswordReset
	err := s.c.FindOneAndDelete(ctx, bson.M{
		"token":      token,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&pr)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.PasswordReset{}, ErrNotFound
		}
		return models.PasswordReset{}, err
	}
	return pr, nil
}
