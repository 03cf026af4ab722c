// internal/app/features/auth/reset.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/studysync/studysync/internal/app/store/resettokens"
	"github.com/studysync/studysync/internal/app/system/apperr"
	"github.com/studysync/studysync/internal/app/system/respond"
	"github.com/studysync/studysync/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type resetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// HandleResetPassword completes the reset flow: consumes the emailed
// token and replaces the account's password.
// POST /auth/reset-password
//
// The token is single-use; a second submission with the same link gets
// the same response as an expired one.
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var in resetRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, h.Log, apperr.Validation("invalid request body"))
		return
	}
	in.Token = strings.TrimSpace(in.Token)
	if in.Token == "" {
		respond.Error(w, h.Log, apperr.Validation("reset token is required"))
		return
	}
	if len(in.NewPassword) < h.PasswordMin {
		respond.Error(w, h.Log, apperr.Validation("password is too short"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	pr, err := h.Resets.Consume(ctx, in.Token)
	if err != nil {
		if errors.Is(err, resettokens.ErrNotFound) {
			respond.Error(w, h.Log, apperr.Validation("reset link is invalid or has expired"))
			return
		}
		respond.Error(w, h.Log, apperr.Dependency("could not validate reset token", err))
		return
	}

	if err := h.Users.UpdatePassword(ctx, pr.UserID, in.NewPassword); err != nil {
		respond.Error(w, h.Log, apperr.Dependency("could not update password", err))
		return
	}

	h.Log.Info("password reset completed", zap.String("user_id", pr.UserID.Hex()))
	respond.OKMessage(w, "Password has been reset. You can now log in.")
}
