package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/studysync/studysync/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
// Repeated calls accumulate params on the same route context.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the given display name, email, and
// role. The password for every fixture user is "password123".
func (f *Fixtures) CreateUser(ctx context.Context, displayName, email, role string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		f.t.Fatalf("bcrypt: %v", err)
	}

	now := time.Now().UTC()
	u := models.User{
		ID:            primitive.NewObjectID(),
		DisplayName:   displayName,
		DisplayNameCI: text.Fold(displayName),
		Email:         email,
		EmailCI:       text.Fold(email),
		PasswordHash:  string(hash),
		Role:          role,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("insert user: %v", err)
	}
	return u
}

// CreateGroup inserts a group created by the given user, with a fresh
// join code and invite token.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, createdBy primitive.ObjectID) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	g := models.Group{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: "test group",
		JoinCode:    primitive.NewObjectID().Hex()[:6],
		InviteToken: primitive.NewObjectID().Hex(),
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("groups").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("insert group: %v", err)
	}
	return g
}

// CreateMembership enrolls a user in a group.
func (f *Fixtures) CreateMembership(ctx context.Context, groupID, userID primitive.ObjectID) models.GroupMembership {
	f.t.Helper()

	m := models.GroupMembership{
		ID:        primitive.NewObjectID(),
		GroupID:   groupID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("group_memberships").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("insert membership: %v", err)
	}
	return m
}

// CreateMessage appends a message to a group's log.
func (f *Fixtures) CreateMessage(ctx context.Context, groupID, senderID primitive.ObjectID, senderName, textBody string) models.Message {
	f.t.Helper()

	m := models.Message{
		ID:         primitive.NewObjectID(),
		GroupID:    groupID,
		SenderID:   senderID,
		SenderName: senderName,
		Text:       textBody,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := f.db.Collection("messages").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("insert message: %v", err)
	}
	return m
}

// CreateTask inserts a pending task on a group's board.
func (f *Fixtures) CreateTask(ctx context.Context, groupID, assignedBy primitive.ObjectID, title string) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	task := models.Task{
		ID:         primitive.NewObjectID(),
		GroupID:    groupID,
		Title:      title,
		Status:     models.TaskStatusPending,
		AssignedBy: assignedBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("tasks").InsertOne(ctx, task); err != nil {
		f.t.Fatalf("insert task: %v", err)
	}
	return task
}
