// internal/app/features/groups/routes.go
package groups

import (
	"github.com/go-chi/chi/v5"
	"github.com/studysync/studysync/internal/app/system/auth"
)

// Routes mounts the group workspace under a signed-in gate. Membership
// checks happen per handler; only authentication is enforced here.
func Routes(h *Handler, sm *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Post("/create", h.HandleCreate)
	r.Get("/my", h.HandleMyGroups)
	r.Post("/join", h.HandleJoin)

	r.Route("/{groupId}", func(r chi.Router) {
		r.Get("/", h.HandleView)
		r.Get("/messages", h.HandleListMessages)
		r.Post("/messages", h.HandlePostMessage)
		r.Get("/resources", h.HandleListResources)
		r.Post("/resources", h.HandleAddResource)
		r.Get("/tasks", h.HandleListTasks)
		r.Post("/tasks", h.HandleAddTask)
		r.Patch("/tasks/{taskId}", h.HandleSetTaskStatus)
	})

	return r
}
