// Package respond writes the uniform {success, ...} JSON envelope every
// endpoint uses. All errors funnel through Error so the propagation
// policy (generic messages, no internal detail outside dev) lives in
// exactly one place.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/studysync/studysync/internal/app/system/apperr"
	"go.uber.org/zap"
)

// devMode controls whether internal error detail is appended to
// responses. Set once at startup from the core env; never in prod.
var devMode bool

// SetDevMode enables internal error detail in error responses.
func SetDevMode(on bool) { devMode = on }

// Envelope is the common response shape.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"` // dev mode only
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 success envelope with data.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 success envelope with data.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Data: data})
}

// OKMessage writes a 200 success envelope with a message only.
func OKMessage(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: msg})
}

// CreatedMessage writes a 201 success envelope with a message only.
func CreatedMessage(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Message: msg})
}

// Error maps err through the apperr taxonomy, logs the full cause, and
// writes {success:false, message}. Internal detail is included only in
// dev mode.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	status := apperr.HTTPStatus(err)
	env := Envelope{Success: false, Message: apperr.MessageOf(err)}

	if status >= http.StatusInternalServerError {
		if log != nil {
			log.Error("request failed", zap.Error(err))
		}
		env.Message = "Server error"
	} else if log != nil {
		log.Debug("request rejected", zap.Int("status", status), zap.Error(err))
	}
	if devMode {
		env.Error = err.Error()
	}

	JSON(w, status, env)
}
