// internal/app/features/groups/create.go
package groups

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/studysync/studysync/internal/app/system/apperr"
	"github.com/studysync/studysync/internal/app/system/inputval"
	"github.com/studysync/studysync/internal/app/system/respond"
	"github.com/studysync/studysync/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type createRequest struct {
	GroupName   string `json:"groupName"`
	Description string `json:"description"`
}

// HandleCreate creates a group and enrolls the creator as its first
// member. The membership write piggybacks on the same request so the
// creator can use the workspace immediately.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _, err := caller(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.Log, apperr.Validation("invalid request body"))
		return
	}

	name := inputval.Sanitize(req.GroupName)
	if name == "" {
		respond.Error(w, h.Log, apperr.Validation("group name is required"))
		return
	}
	description := inputval.Sanitize(req.Description)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.Create(ctx, name, description, userID)
	if err != nil {
		respond.Error(w, h.Log, apperr.Dependency("could not create group", err))
		return
	}
	if err := h.Members.Add(ctx, g.ID, userID); err != nil {
		// The group exists but the creator is not in it. Surface the
		// failure rather than hand back a workspace they cannot open.
		h.Log.Error("creator membership insert failed",
			zap.String("group_id", g.ID.Hex()), zap.Error(err))
		respond.Error(w, h.Log, apperr.Dependency("could not create group", err))
		return
	}

	h.Log.Info("group created",
		zap.String("group_id", g.ID.Hex()),
		zap.String("created_by", userID.Hex()))
	respond.Created(w, map[string]any{"group": g})
}
