// Package auth issues and verifies the signed, self-contained session
// tokens that replace any server-side session state. A token embeds the
// caller's identity and expiry; every request is verified independently,
// so logout is a client-side discard and rotating the signing key
// invalidates all outstanding sessions at once.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/securecookie"
	"github.com/studysync/studysync/internal/app/system/apperr"
	"github.com/studysync/studysync/internal/app/system/respond"
	"github.com/studysync/studysync/internal/domain/models"
	"go.uber.org/zap"
)

// DefaultTTL is the session lifetime when config leaves it unset.
const DefaultTTL = 120 * time.Minute

// SessionUser is the verified claim set injected into r.Context().
type SessionUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// claims is the wire shape of the token payload.
type claims struct {
	DisplayName string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	jwt.RegisteredClaims
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// Manager signs and verifies session tokens. The key is process-wide
// configuration loaded once at startup.
type Manager struct {
	key []byte
	ttl time.Duration
	log *zap.Logger
}

// NewManager builds a Manager. An empty key is allowed only outside
// production: a random one is generated, which means sessions do not
// survive a restart.
func NewManager(sessionKey string, ttl time.Duration, prod bool, logger *zap.Logger) (*Manager, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	key := []byte(sessionKey)
	if len(key) == 0 {
		if prod {
			return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
		}
		key = securecookie.GenerateRandomKey(32)
		logger.Warn("no session key configured; generated an ephemeral one (sessions reset on restart)")
	} else if len(key) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(key)))
	}
	return &Manager{key: key, ttl: ttl, log: logger}, nil
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue signs a session token for u and returns it with its expiry.
func (m *Manager) Issue(u models.User) (string, time.Time, error) {
	now := time.Now().UTC()
	expires := now.Add(m.ttl)
	c := claims{
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Role:        u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return tok, expires, nil
}

// Verify parses and validates a token. Malformed, forged, and expired
// tokens all come back as the same generic authentication error.
func (m *Manager) Verify(token string) (*SessionUser, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.key, nil
	})
	if err != nil {
		return nil, apperr.Authentication("invalid or expired session")
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.Subject == "" {
		return nil, apperr.Authentication("invalid or expired session")
	}
	return &SessionUser{ID: c.Subject, Name: c.DisplayName, Email: c.Email, Role: c.Role}, nil
}

// BearerToken extracts the token from the Authorization header.
// Returns "" when the header is absent or not a bearer scheme.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// CurrentUser returns the verified caller and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects a user into the request context for handler
// tests, bypassing token verification.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// LoadSession verifies the bearer token, if any, and injects the claims
// into the request context. A missing or invalid token is not an error
// here; RequireSignedIn decides whether the route needs one.
func (m *Manager) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok := BearerToken(r); tok != "" {
			if u, err := m.Verify(tok); err == nil {
				r = withUser(r, u)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn rejects requests that carry no verified session with a
// 401 envelope. It assumes LoadSession already ran.
func (m *Manager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			respond.Error(w, m.log, apperr.Authentication("authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}
