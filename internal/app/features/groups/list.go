// internal/app/features/groups/list.go
package groups

import (
	"context"
	"net/http"

	"github.com/studysync/studysync/internal/app/system/apperr"
	"github.com/studysync/studysync/internal/app/system/respond"
	"github.com/studysync/studysync/internal/app/system/timeouts"
	"github.com/studysync/studysync/internal/domain/models"
)

// HandleMyGroups lists every group the caller belongs to, oldest first.
func (h *Handler) HandleMyGroups(w http.ResponseWriter, r *http.Request) {
	userID, _, err := caller(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ids, err := h.Members.GroupIDsForUser(ctx, userID)
	if err != nil {
		respond.Error(w, h.Log, apperr.Dependency("could not load memberships", err))
		return
	}
	gs, err := h.Groups.ListByIDs(ctx, ids)
	if err != nil {
		respond.Error(w, h.Log, apperr.Dependency("could not load groups", err))
		return
	}
	if gs == nil {
		gs = []models.Group{}
	}
	respond.OK(w, map[string]any{"groups": gs})
}
