// internal/app/features/auth/handler.go
package auth

import (
	"time"

	loginstore "github.com/studysync/studysync/internal/app/store/logins"
	"github.com/studysync/studysync/internal/app/store/resettokens"
	userstore "github.com/studysync/studysync/internal/app/store/users"
	"github.com/studysync/studysync/internal/app/system/auth"
	"github.com/studysync/studysync/internal/app/system/inputval"
	"github.com/studysync/studysync/internal/app/system/mailer"
	"github.com/studysync/studysync/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the auth feature:
// registration, login, session probing, and the forgot-password flow.
type Handler struct {
	Users       *userstore.Store
	Logins      *loginstore.Store
	Resets      *resettokens.Store
	Sessions    *auth.Manager
	Mail        *mailer.Mailer
	Limits      *ratelimit.LoginLimiter
	PasswordMin int
	Log         *zap.Logger
}

// NewHandler constructs the auth Handler. It is called from the
// bootstrap BuildHandler function once DB and config are ready.
func NewHandler(db *mongo.Database, sessions *auth.Manager, mail *mailer.Mailer, passwordMin int, resetExpiry time.Duration, logger *zap.Logger) *Handler {
	if passwordMin <= 0 {
		passwordMin = inputval.DefaultPasswordMin
	}
	return &Handler{
		Users:       userstore.New(db),
		Logins:      loginstore.New(db),
		Resets:      resettokens.New(db, resetExpiry),
		Sessions:    sessions,
		Mail:        mail,
		Limits:      ratelimit.NewLoginLimiter(),
		PasswordMin: passwordMin,
		Log:         logger,
	}
}
