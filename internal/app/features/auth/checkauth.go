// internal/app/features/auth/checkauth.go
package auth

import (
	"net/http"

	"github.com/studysync/studysync/internal/app/system/auth"
	"github.com/studysync/studysync/internal/app/system/respond"
)

// HandleCheckAuth reports whether the caller holds a live session.
// GET /auth/check-auth
//
// Unlike the protected routes this never returns 401: a missing,
// malformed, or expired token is a clean {success:false}, so a client
// probing session state at startup gets a boolean, not an error.
func (h *Handler) HandleCheckAuth(w http.ResponseWriter, r *http.Request) {
	tok := auth.BearerToken(r)
	if tok == "" {
		respond.JSON(w, http.StatusOK, respond.Envelope{Success: false})
		return
	}
	u, err := h.Sessions.Verify(tok)
	if err != nil {
		respond.JSON(w, http.StatusOK, respond.Envelope{Success: false})
		return
	}

	respond.OK(w, userPayload{
		ID:          u.ID,
		DisplayName: u.Name,
		Email:       u.Email,
		Role:        u.Role,
	})
}
