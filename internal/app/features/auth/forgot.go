// internal/app/features/auth/forgot.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/studysync/studysync/internal/app/system/apperr"
	"github.com/studysync/studysync/internal/app/system/respond"
	"github.com/studysync/studysync/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// genericResetMessage is returned whether or not the account exists, so
// the endpoint reveals nothing about registered addresses.
const genericResetMessage = "If the email exists, a reset link has been sent"

type forgotRequest struct {
	Email string `json:"email"`
}

// HandleForgotPassword starts the reset flow.
// POST /auth/forgot-password
//
// When the account exists a token is persisted and handed to the mail
// sink asynchronously; sink failures are logged and swallowed. The
// response is the same in every branch except missing input.
func (h *Handler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in forgotRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, h.Log, apperr.Validation("invalid request body"))
		return
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" {
		respond.Error(w, h.Log, apperr.Validation("email is required"))
		return
	}

	if ok, reason := h.Limits.Check(r, in.Email); !ok {
		respond.Error(w, h.Log, apperr.RateLimited(reason))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			h.Log.Error("forgot-password lookup failed", zap.Error(err))
		}
		respond.OKMessage(w, genericResetMessage)
		return
	}

	pr, err := h.Resets.Create(ctx, u.ID, u.Email)
	if err != nil {
		h.Log.Error("reset token create failed", zap.Error(err))
		respond.OKMessage(w, genericResetMessage)
		return
	}

	h.Mail.SendResetEmailAsync(u.Email, pr.Token, u.DisplayName)

	respond.OKMessage(w, genericResetMessage)
}
