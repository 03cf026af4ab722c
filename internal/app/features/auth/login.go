// internal/app/features/auth/login.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	userstore "github.com/studysync/studysync/internal/app/store/users"
	"github.com/studysync/studysync/internal/app/system/apperr"
	"github.com/studysync/studysync/internal/app/system/respond"
	"github.com/studysync/studysync/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginPayload struct {
	AccessToken string      `json:"accessToken"`
	ExpiresAt   time.Time   `json:"expiresAt"`
	User        userPayload `json:"user"`
}

// HandleLogin verifies credentials and issues a session token.
// POST /auth/login
//
// An unknown email and a wrong password produce the identical response
// so callers cannot probe which addresses have accounts.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, h.Log, apperr.Validation("invalid request body"))
		return
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		respond.Error(w, h.Log, apperr.Validation("email and password are required"))
		return
	}

	if ok, reason := h.Limits.Check(r, in.Email); !ok {
		respond.Error(w, h.Log, apperr.RateLimited(reason))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.VerifyCredentials(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, userstore.ErrNoSuchUser) || errors.Is(err, userstore.ErrBadPassword) {
			respond.Error(w, h.Log, apperr.Authentication("Invalid credentials"))
			return
		}
		respond.Error(w, h.Log, apperr.Dependency("could not verify credentials", err))
		return
	}

	h.Limits.ResetEmail(in.Email)

	token, expiresAt, err := h.Sessions.Issue(*u)
	if err != nil {
		respond.Error(w, h.Log, apperr.Dependency("could not issue session", err))
		return
	}

	// Advisory login history; a failure here must not block the login.
	if err := h.Logins.CreateFrom(ctx, r, u.ID); err != nil {
		h.Log.Warn("login record write failed", zap.Error(err))
	}

	respond.OK(w, loginPayload{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        userToPayload(u),
	})
}
