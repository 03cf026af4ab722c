// internal/app/features/groups/resources.go
package groups

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/studysync/studysync/internal/app/system/apperr"
	"github.com/studysync/studysync/internal/app/system/inputval"
	"github.com/studysync/studysync/internal/app/system/respond"
	"github.com/studysync/studysync/internal/app/system/restype"
	"github.com/studysync/studysync/internal/app/system/timeouts"
	"github.com/studysync/studysync/internal/domain/models"
)

type addResourceRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// HandleListResources returns the group's shared resources, oldest
// first.
func (h *Handler) HandleListResources(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, _, _, err := h.gate(ctx, r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	res, err := h.Resources.ListByGroup(ctx, g.ID)
	if err != nil {
		respond.Error(w, h.Log, apperr.Dependency("could not load resources", err))
		return
	}
	if res == nil {
		res = []models.Resource{}
	}
	respond.OK(w, map[string]any{"resources": res})
}

// HandleAddResource stores a shared link. The resource type is taken
// from the request when it names a known type, otherwise inferred from
// the URL.
func (h *Handler) HandleAddResource(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, userID, _, err := h.gate(ctx, r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	var req addResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.Log, apperr.Validation("invalid request body"))
		return
	}
	title := inputval.Sanitize(req.Title)
	url := strings.TrimSpace(req.URL)
	if title == "" || url == "" {
		respond.Error(w, h.Log, apperr.Validation("title and url are required"))
		return
	}
	typ := restype.Resolve(req.Type, url)

	res, err := h.Resources.Add(ctx, g.ID, userID, title, url, typ)
	if err != nil {
		respond.Error(w, h.Log, apperr.Dependency("could not add resource", err))
		return
	}
	respond.Created(w, map[string]any{"resource": res})
}
