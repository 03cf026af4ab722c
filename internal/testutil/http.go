package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/studysync/studysync/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StudentUser returns a session user with the student role.
func StudentUser() *auth.SessionUser {
	return &auth.SessionUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Student",
		Email: "student@test.com",
		Role:  "student",
	}
}

// InstructorUser returns a session user with the instructor role.
func InstructorUser() *auth.SessionUser {
	return &auth.SessionUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Instructor",
		Email: "instructor@test.com",
		Role:  "instructor",
	}
}

// SessionUserFor converts a user ID and identity fields into the
// context form handlers read.
func SessionUserFor(id primitive.ObjectID, name, email, role string) *auth.SessionUser {
	return &auth.SessionUser{ID: id.Hex(), Name: name, Email: email, Role: role}
}

// JSONRequest builds a request with a JSON-encoded body.
func JSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	return r
}

// SignedInRequest builds a JSON request carrying u as the verified
// session user, bypassing token issuance.
func SignedInRequest(t *testing.T, method, target string, body any, u *auth.SessionUser) *http.Request {
	t.Helper()
	return auth.WithTestUser(JSONRequest(t, method, target, body), u)
}

// DecodeEnvelope unmarshals a recorded response body into out and
// returns the top-level success flag and message.
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, out any) (bool, string) {
	t.Helper()

	var env struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body: %s)", err, rec.Body.String())
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("decode data: %v (data: %s)", err, env.Data)
		}
	}
	return env.Success, env.Message
}
