// internal/app/features/groups/handler.go
package groups

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/studysync/studysync/internal/app/policy/grouppolicy"
	groupstore "github.com/studysync/studysync/internal/app/store/groups"
	membershipstore "github.com/studysync/studysync/internal/app/store/memberships"
	messagestore "github.com/studysync/studysync/internal/app/store/messages"
	resourcestore "github.com/studysync/studysync/internal/app/store/resources"
	taskstore "github.com/studysync/studysync/internal/app/store/tasks"
	"github.com/studysync/studysync/internal/app/system/apperr"
	"github.com/studysync/studysync/internal/app/system/auth"
	"github.com/studysync/studysync/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the groups feature:
// group lifecycle plus the three membership-gated sub-logs (messages,
// resources, tasks).
type Handler struct {
	Groups    *groupstore.Store
	Members   *membershipstore.Store
	Messages  *messagestore.Store
	Resources *resourcestore.Store
	Tasks     *taskstore.Store
	Log       *zap.Logger
}

// NewHandler constructs a groups Handler. joinCodeLen comes from config;
// zero selects the default.
func NewHandler(db *mongo.Database, joinCodeLen int, logger *zap.Logger) *Handler {
	return &Handler{
		Groups:    groupstore.New(db, joinCodeLen),
		Members:   membershipstore.New(db),
		Messages:  messagestore.New(db),
		Resources: resourcestore.New(db),
		Tasks:     taskstore.New(db),
		Log:       logger,
	}
}

// caller returns the verified session user's ObjectID. The signed-in
// middleware has already run on every route that calls this.
func caller(r *http.Request) (primitive.ObjectID, *auth.SessionUser, error) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return primitive.NilObjectID, nil, apperr.Authentication("authentication required")
	}
	id, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return primitive.NilObjectID, nil, apperr.Authentication("invalid session subject")
	}
	return id, u, nil
}

// gate parses the groupId URL param and runs the membership check that
// guards every workspace operation.
func (h *Handler) gate(ctx context.Context, r *http.Request) (models.Group, primitive.ObjectID, *auth.SessionUser, error) {
	userID, su, err := caller(r)
	if err != nil {
		return models.Group{}, primitive.NilObjectID, nil, err
	}
	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "groupId"))
	if err != nil {
		return models.Group{}, primitive.NilObjectID, nil, apperr.Validation("invalid group id")
	}
	g, err := grouppolicy.RequireMembership(ctx, h.Groups, h.Members, groupID, userID)
	if err != nil {
		return models.Group{}, primitive.NilObjectID, nil, err
	}
	return g, userID, su, nil
}
