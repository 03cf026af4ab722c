// internal/app/features/groups/view.go
package groups

import (
	"context"
	"net/http"

	"github.com/studysync/studysync/internal/app/system/respond"
	"github.com/studysync/studysync/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleView returns one group's detail to a member, with the current
// member count alongside.
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, _, _, err := h.gate(ctx, r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	count, err := h.Members.CountForGroup(ctx, g.ID)
	if err != nil {
		h.Log.Warn("member count failed", zap.String("group_id", g.ID.Hex()), zap.Error(err))
		count = 0
	}
	respond.OK(w, map[string]any{"group": g, "memberCount": count})
}
