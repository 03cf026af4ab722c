// internal/domain/models/message.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is one chat entry in a group. Append-only: messages are never
// edited or deleted. Ordering is (created_at, _id) so concurrent readers
// always observe the same total order.
type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID    primitive.ObjectID `bson:"group_id" json:"groupId"`
	SenderID   primitive.ObjectID `bson:"sender_id" json:"senderId"`
	SenderName string             `bson:"sender_name" json:"senderName"`
	Text       string             `bson:"text" json:"text"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
