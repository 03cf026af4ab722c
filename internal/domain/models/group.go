// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a study-group workspace. Members are not embedded here;
// the group_memberships collection is the authoritative join.
//
// JoinCode is the short human-typeable identifier for direct entry.
// InviteToken is the opaque alternative resolved the same way.
// Both are unique across groups (enforced by indexes at startup).
type Group struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	JoinCode    string             `bson:"join_code" json:"joinCode"`
	InviteToken string             `bson:"invite_token" json:"inviteToken"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"createdBy"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
