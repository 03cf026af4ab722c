// internal/app/store/tasks/taskstore.go
package taskstore

import (
	"context"
	"errors"
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
	return &Store{c: db.Collection("tasks")}
}

// ErrTaskNotFound is returned when the task is absent from the group.
var ErrTaskNotFound = errors.New("task not found in this group")

// Add inserts a task with status pending.
func (s *Store) Add(ctx context.Context, groupID, assignedBy primitive.ObjectID, title, description string, dueDate *time.Time) (models.Task, error) {
	now := time.Now().UTC()
	t := models.Task{
		ID:          primitive.NewObjectID(),
		GroupID:     groupID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Status:      models.TaskStatusPending,
		AssignedBy:  assignedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// SetStatus sets the task's status unconditionally to the given value.
// The desired state is computed client-side from the last-seen status,
// so concurrent toggles are last-write-wins; the store does not reject
// stale writers. Scoping the filter to the group keeps a caller from
// flipping tasks in groups they merely guessed IDs for.
func (s *Store) SetStatus(ctx context.Context, groupID, taskID primitive.ObjectID, status string) (models.Task, error) {
	var t models.Task
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": taskID, "group_id": groupID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}
	return t, nil
}

// ListByGroup returns a group's tasks in creation order.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Task, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"group_id": groupID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Task{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
