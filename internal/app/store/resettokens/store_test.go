package resettokens_test

import (
	"errors"
	"testing"
	"time"

	"github.com/studysync/studysync/internal/app/store/resettokens"
	"github.com/studysync/studysync/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_CreateConsume(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resettokens.New(db, time.Hour)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	pr, err := store.Create(ctx, userID, "ada@example.com")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if pr.Token == "" {
		t.Fatal("expected a token")
	}

	got, err := store.Consume(ctx, pr.Token)
	if err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if got.UserID != userID {
		t.Errorf("UserID = %v, want %v", got.UserID, userID)
	}

	// Single use: the same token cannot be consumed twice.
	if _, err := store.Consume(ctx, pr.Token); !errors.Is(err, resettokens.ErrNotFound) {
		t.Errorf("second Consume: got %v, want ErrNotFound", err)
	}
}

func TestStore_Create_ReplacesOutstanding(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resettokens.New(db, time.Hour)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	first, err := store.Create(ctx, userID, "ada@example.com")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := store.Create(ctx, userID, "ada@example.com")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Only the newest emailed link works.
	if _, err := store.Consume(ctx, first.Token); !errors.Is(err, resettokens.ErrNotFound) {
		t.Errorf("old token: got %v, want ErrNotFound", err)
	}
	if _, err := store.Consume(ctx, second.Token); err != nil {
		t.Errorf("new token failed: %v", err)
	}
}

func TestStore_Consume_Expired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resettokens.New(db, time.Millisecond)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	pr, err := store.Create(ctx, primitive.NewObjectID(), "ada@example.com")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, err := store.Consume(ctx, pr.Token); !errors.Is(err, resettokens.ErrNotFound) {
		t.Errorf("expired token: got %v, want ErrNotFound", err)
	}
}

func TestStore_Consume_Unknown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resettokens.New(db, time.Hour)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Consume(ctx, "never-issued"); !errors.Is(err, resettokens.ErrNotFound) {
		t.Errorf("unknown token: got %v, want ErrNotFound", err)
	}
}
