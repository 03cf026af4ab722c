// internal/app/policy/grouppolicy/grouppolicy.go
package grouppolicy

import (
	"context"
	"errors"

	groupstore "github.com/studysync/studysync/internal/app/store/groups"
	membershipstore "github.com/studysync/studysync/internal/app/store/memberships"
	"github.com/studysync/studysync/internal/app/system/apperr"
	"github.com/studysync/studysync/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// RequireMembership is the gate in front of every workspace operation:
// the group must exist and the caller must currently be in it.
//
// The distinction matters for the response: an absent group is
// NotFound, an existing group the caller is outside of is Forbidden.
// Membership is re-checked on every call, never cached, so removal
// takes effect on the next poll.
func RequireMembership(ctx context.Context, gs *groupstore.Store, ms *membershipstore.Store, groupID, userID primitive.ObjectID) (models.Group, error) {
	g, err := gs.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Group{}, apperr.NotFound("group not found")
		}
		return models.Group{}, apperr.Dependency("could not load group", err)
	}

	ok, err := ms.Exists(ctx, groupID, userID)
	if err != nil {
		return models.Group{}, apperr.Dependency("could not check membership", err)
	}
	if !ok {
		return models.Group{}, apperr.Forbidden("you are not a member of this group")
	}
	return g, nil
}
