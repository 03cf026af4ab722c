// internal/domain/models/resource.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resource type values. The type is advisory metadata inferred once at
// write time from the URL; it is never recomputed.
const (
	ResourceTypeDrive   = "drive"
	ResourceTypeYouTube = "youtube"
	ResourceTypePDF     = "pdf"
	ResourceTypeNotes   = "notes"
	ResourceTypeLink    = "link"
)

// ValidResourceType reports whether t is one of the known type values.
func ValidResourceType(t string) bool {
	switch t {
	case ResourceTypeDrive, ResourceTypeYouTube, ResourceTypePDF, ResourceTypeNotes, ResourceTypeLink:
		return true
	}
	return false
}

// Resource is a shared link in a group's catalog. Append-only.
type Resource struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID   primitive.ObjectID `bson:"group_id" json:"groupId"`
	Title     string             `bson:"title" json:"title"`
	URL       string             `bson:"url" json:"url"`
	Type      string             `bson:"type" json:"type"`
	AddedBy   primitive.ObjectID `bson:"added_by" json:"addedBy"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
