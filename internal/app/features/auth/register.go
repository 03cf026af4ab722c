// internal/app/features/auth/register.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/studysync/studysync/internal/app/store/users"
	"github.com/studysync/studysync/internal/app/system/apperr"
	"github.com/studysync/studysync/internal/app/system/inputval"
	"github.com/studysync/studysync/internal/app/system/respond"
	"github.com/studysync/studysync/internal/app/system/timeouts"
	"github.com/studysync/studysync/internal/domain/models"
)

type registerRequest struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

// HandleRegister creates a new account.
// POST /auth/register
//
// Registration does not log the user in; login is a separate call.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, h.Log, apperr.Validation("invalid request body"))
		return
	}

	in.DisplayName = inputval.Sanitize(in.DisplayName)
	in.Email = strings.TrimSpace(in.Email)
	if in.DisplayName == "" || in.Email == "" || in.Password == "" {
		respond.Error(w, h.Log, apperr.Validation("displayName, email and password are required"))
		return
	}
	if !inputval.ValidEmail(in.Email) {
		respond.Error(w, h.Log, apperr.Validation("invalid email format"))
		return
	}
	if len(in.Password) < h.PasswordMin {
		respond.Error(w, h.Log, apperr.Validation("password must be at least 6 characters long"))
		return
	}
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = "student"
	}
	if role != "student" && role != "instructor" {
		respond.Error(w, h.Log, apperr.Validation("role must be student or instructor"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// One existence query for both identifiers, then insert. The unique
	// indexes close the race window the pre-check leaves open.
	taken, err := h.Users.Exists(ctx, in.Email, in.DisplayName)
	if err != nil {
		respond.Error(w, h.Log, apperr.Dependency("could not check existing users", err))
		return
	}
	if taken {
		respond.Error(w, h.Log, apperr.Conflict("user name or user email already exists"))
		return
	}

	if _, err := h.Users.Create(ctx, in.DisplayName, in.Email, in.Password, role); err != nil {
		if errors.Is(err, userstore.ErrDuplicate) {
			respond.Error(w, h.Log, apperr.Conflict("user name or user email already exists"))
			return
		}
		respond.Error(w, h.Log, apperr.Dependency("could not create user", err))
		return
	}

	respond.CreatedMessage(w, "User registered successfully!")
}

// userPayload is the caller-facing user shape shared by login and
// check-auth responses.
type userPayload struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

func userToPayload(u *models.User) userPayload {
	return userPayload{
		ID:          u.ID.Hex(),
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Role:        u.Role,
	}
}
