// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account. The password hash never leaves the
// credential store; it is excluded from JSON.
//
// NOTE:
//   - Group membership is not embedded on User.
//     Use the group_memberships collection to discover a user's groups.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DisplayName   string             `bson:"display_name" json:"displayName"`
	DisplayNameCI string             `bson:"display_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email         string             `bson:"email" json:"email"`
	EmailCI       string             `bson:"email_ci" json:"-"`
	PasswordHash  string             `bson:"password_hash" json:"-"`
	Role          string             `bson:"role" json:"role"` // student | instructor

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
