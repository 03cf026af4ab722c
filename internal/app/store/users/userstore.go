// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/studysync/studysync/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost for password hashing.
const BcryptCost = 10

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicate is returned when the email or display name is taken.
	ErrDuplicate = errors.New("user name or user email already exists")
	// ErrNoSuchUser is returned by credential checks for unknown emails.
	// Callers must collapse it with ErrBadPassword before responding.
	ErrNoSuchUser = errors.New("no user with this email")
	// ErrBadPassword is returned when the hash comparison fails.
	ErrBadPassword = errors.New("password mismatch")
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Exists reports whether any user already claims this email or display
// name (one query, case-insensitive).
func (s *Store) Exists(ctx context.Context, email, displayName string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"$or": bson.A{
		bson.M{"email_ci": text.Fold(email)},
		bson.M{"display_name_ci": text.Fold(displayName)},
	}})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create hashes rawPassword and inserts the user. The raw password is
// never stored. A duplicate email or display name (raced past the
// Exists pre-check) comes back as ErrDuplicate via the unique indexes.
func (s *Store) Create(ctx context.Context, displayName, email, rawPassword, role string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), BcryptCost)
	if err != nil {
		return models.User{}, err
	}

	now := time.Now().UTC()
	u := models.User{
		ID:            primitive.NewObjectID(),
		DisplayName:   strings.TrimSpace(displayName),
		DisplayNameCI: text.Fold(displayName),
		Email:         strings.TrimSpace(email),
		EmailCI:       text.Fold(email),
		PasswordHash:  string(hash),
		Role:          role,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}
	return u, nil
}

// UpdatePassword rehashes and replaces the user's password. Used by the
// reset flow after a token is consumed.
func (s *Store) UpdatePassword(ctx context.Context, userID primitive.ObjectID, rawPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), BcryptCost)
	if err != nil {
		return err
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"password_hash": string(hash), "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoSuchUser
	}
	return nil
}

// VerifyCredentials looks up the account and checks the password hash.
// The two failure modes are distinct here for logging; the auth feature
// collapses both into one generic message before responding.
func (s *Store) VerifyCredentials(ctx context.Context, email, rawPassword string) (*models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoSuchUser
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(rawPassword)) != nil {
		return nil, ErrBadPassword
	}
	return u, nil
}
