// internal/app/features/auth/routes.go
package auth

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the /auth subrouter. None of these require an existing
// session; check-auth inspects the token itself so it can answer with a
// boolean instead of a 401.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
	r.Post("/forgot-password", h.HandleForgotPassword)
	r.Post("/reset-password", h.HandleResetPassword)
	r.Get("/check-auth", h.HandleCheckAuth)

	return r
}
