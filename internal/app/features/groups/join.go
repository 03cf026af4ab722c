// internal/app/features/groups/join.go
package groups

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	membershipstore "github.com/studysync/studysync/internal/app/store/memberships"
	"github.com/studysync/studysync/internal/app/system/apperr"
	"github.com/studysync/studysync/internal/app/system/respond"
	"github.com/studysync/studysync/internal/app/system/timeouts"
	"github.com/studysync/studysync/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type joinRequest struct {
	JoinCode    string `json:"joinCode"`
	InviteToken string `json:"inviteToken"`
}

// HandleJoin adds the caller to a group identified by exactly one of a
// join code or an invite token. Joining a group the caller is already
// in succeeds without a second membership row.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	userID, _, err := caller(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.Log, apperr.Validation("invalid request body"))
		return
	}
	code := strings.TrimSpace(req.JoinCode)
	token := strings.TrimSpace(req.InviteToken)
	if (code == "") == (token == "") {
		respond.Error(w, h.Log, apperr.Validation("provide a join code or an invite token"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var g models.Group
	if code != "" {
		g, err = h.Groups.GetByJoinCode(ctx, code)
	} else {
		g, err = h.Groups.GetByInviteToken(ctx, token)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Error(w, h.Log, apperr.NotFound("group not found"))
			return
		}
		respond.Error(w, h.Log, apperr.Dependency("could not look up group", err))
		return
	}

	if err := h.Members.Add(ctx, g.ID, userID); err != nil {
		if !errors.Is(err, membershipstore.ErrDuplicateMembership) {
			respond.Error(w, h.Log, apperr.Dependency("could not join group", err))
			return
		}
		// Already a member; treat the retry as a success.
	} else {
		h.Log.Info("user joined group",
			zap.String("group_id", g.ID.Hex()), zap.String("user_id", userID.Hex()))
	}

	respond.OK(w, map[string]any{"group": g})
}
