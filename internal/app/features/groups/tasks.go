// internal/app/features/groups/tasks.go
package groups

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	taskstore "github.com/studysync/studysync/internal/app/store/tasks"
	"github.com/studysync/studysync/internal/app/system/apperr"
	"github.com/studysync/studysync/internal/app/system/inputval"
	"github.com/studysync/studysync/internal/app/system/respond"
	"github.com/studysync/studysync/internal/app/system/timeouts"
	"github.com/studysync/studysync/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type addTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
}

type setTaskStatusRequest struct {
	Status string `json:"status"`
}

// parseDueDate accepts either an RFC 3339 timestamp or a bare
// YYYY-MM-DD date.
func parseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// HandleListTasks returns the group's tasks in creation order.
func (h *Handler) HandleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, _, _, err := h.gate(ctx, r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	ts, err := h.Tasks.ListByGroup(ctx, g.ID)
	if err != nil {
		respond.Error(w, h.Log, apperr.Dependency("could not load tasks", err))
		return
	}
	if ts == nil {
		ts = []models.Task{}
	}
	respond.OK(w, map[string]any{"tasks": ts})
}

// HandleAddTask creates a task in the pending state.
func (h *Handler) HandleAddTask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, userID, _, err := h.gate(ctx, r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	var req addTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.Log, apperr.Validation("invalid request body"))
		return
	}
	title := inputval.Sanitize(req.Title)
	if title == "" {
		respond.Error(w, h.Log, apperr.Validation("task title is required"))
		return
	}
	description := inputval.Sanitize(req.Description)
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		respond.Error(w, h.Log, apperr.Validation("invalid due date"))
		return
	}

	t, err := h.Tasks.Add(ctx, g.ID, userID, title, description, due)
	if err != nil {
		respond.Error(w, h.Log, apperr.Dependency("could not create task", err))
		return
	}
	respond.Created(w, map[string]any{"task": t})
}

// HandleSetTaskStatus moves a task between pending and completed. The
// write is unconditional; with two concurrent togglers the later write
// wins.
func (h *Handler) HandleSetTaskStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, _, _, err := h.gate(ctx, r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	taskID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "taskId"))
	if err != nil {
		respond.Error(w, h.Log, apperr.Validation("invalid task id"))
		return
	}

	var req setTaskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.Log, apperr.Validation("invalid request body"))
		return
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if !models.ValidTaskStatus(status) {
		respond.Error(w, h.Log, apperr.Validation("status must be pending or completed"))
		return
	}

	t, err := h.Tasks.SetStatus(ctx, g.ID, taskID, status)
	if err != nil {
		if errors.Is(err, taskstore.ErrTaskNotFound) {
			respond.Error(w, h.Log, apperr.NotFound("task not found"))
			return
		}
		respond.Error(w, h.Log, apperr.Dependency("could not update task", err))
		return
	}
	respond.OK(w, map[string]any{"task": t})
}
