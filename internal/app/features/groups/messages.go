// internal/app/features/groups/messages.go
package groups

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/studysync/studysync/internal/app/system/apperr"
	"github.com/studysync/studysync/internal/app/system/inputval"
	"github.com/studysync/studysync/internal/app/system/respond"
	"github.com/studysync/studysync/internal/app/system/timeouts"
	"github.com/studysync/studysync/internal/domain/models"
)

type postMessageRequest struct {
	Text string `json:"text"`
}

// HandleListMessages returns the full message log in posting order.
// Clients poll this endpoint; two fetches with no writes between them
// return identical lists.
func (h *Handler) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, _, _, err := h.gate(ctx, r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	msgs, err := h.Messages.ListByGroup(ctx, g.ID)
	if err != nil {
		respond.Error(w, h.Log, apperr.Dependency("could not load messages", err))
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	respond.OK(w, map[string]any{"messages": msgs})
}

// HandlePostMessage appends one message to the group's log. The sender
// name is denormalized onto the message so list reads stay one query.
func (h *Handler) HandlePostMessage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, userID, su, err := h.gate(ctx, r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.Log, apperr.Validation("invalid request body"))
		return
	}
	text := inputval.Sanitize(req.Text)
	if text == "" {
		respond.Error(w, h.Log, apperr.Validation("message text is required"))
		return
	}

	msg, err := h.Messages.Append(ctx, g.ID, userID, su.Name, text)
	if err != nil {
		respond.Error(w, h.Log, apperr.Dependency("could not post message", err))
		return
	}
	respond.Created(w, map[string]any{"message": msg})
}
