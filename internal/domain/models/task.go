// internal/domain/models/task.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task status values. The status field is a two-state machine
// (pending ⇄ completed); both transitions are always legal.
const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

// ValidTaskStatus reports whether s is a known status value.
func ValidTaskStatus(s string) bool {
	return s == TaskStatusPending || s == TaskStatusCompleted
}

// Task is a checklist entry on a group's task board. Only Status is
// mutable after creation; any member may change it.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID     primitive.ObjectID `bson:"group_id" json:"groupId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	DueDate     *time.Time         `bson:"due_date,omitempty" json:"dueDate,omitempty"`
	Status      string             `bson:"status" json:"status"`
	AssignedBy  primitive.ObjectID `bson:"assigned_by" json:"assignedBy"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
