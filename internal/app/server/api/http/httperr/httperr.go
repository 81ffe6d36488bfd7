// Package httperr renders every API error as {"error": "<message>"}.
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"healthwatch/internal/domain/record"
	"healthwatch/internal/domain/session"
	"healthwatch/internal/domain/user"
	"healthwatch/internal/domain/validation"

	"github.com/danielgtaylor/huma/v2"
)

const (
	MsgTokenRequired    = "Access token required"
	MsgTokenInvalid     = "Invalid or expired token"
	MsgInvalidAuth      = "Invalid credentials"
	MsgUserExists       = "User already exists"
	MsgUserNotFound     = "User not found"
	MsgAccountMissing   = "Account no longer exists"
	MsgTooManyRequests  = "Too many requests, try again later"
	MsgInternal         = "Internal server error"
	MsgRouteNotFound    = "Route not found"
	MsgMethodNotAllowed = "Method not allowed"
)

// Error реализует huma.StatusError с конвертом {"error": "..."}.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *Error) Error() string  { return e.Message }
func (e *Error) GetStatus() int { return e.Status }

func New(status int, msg string) *Error {
	return &Error{Status: status, Message: msg}
}

// Install заменяет фабрику ошибок huma. Ошибки валидации huma (422) отдаются как 400.
func Install() {
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		if status == http.StatusUnprocessableEntity {
			status = http.StatusBadRequest
		}
		if status >= http.StatusInternalServerError {
			return New(status, MsgInternal)
		}

		details := make([]string, 0, len(errs))
		for _, err := range errs {
			if err != nil {
				details = append(details, detail(err))
			}
		}
		if len(details) > 0 {
			msg = msg + ": " + strings.Join(details, "; ")
		}
		return New(status, msg)
	}
}

// detail описывает ошибку без значения поля: в теле запроса может быть пароль.
func detail(err error) string {
	var ed *huma.ErrorDetail
	if !errors.As(err, &ed) {
		return err.Error()
	}
	if ed.Location == "" {
		return ed.Message
	}
	return ed.Message + " (" + ed.Location + ")"
}

// From maps a domain error to its HTTP status. Anything unrecognised becomes
// a 500 carrying fallback and nothing of err.
func From(err error, fallback string) *Error {
	var ve *validation.Error
	switch {
	case errors.As(err, &ve):
		return New(http.StatusBadRequest, ve.Error())
	case errors.Is(err, validation.ErrInvalidInput):
		return New(http.StatusBadRequest, err.Error())
	case errors.Is(err, user.ErrInvalidAuth):
		return New(http.StatusBadRequest, MsgInvalidAuth)
	case errors.Is(err, user.ErrDuplicate):
		return New(http.StatusBadRequest, MsgUserExists)
	case errors.Is(err, user.ErrNotFound):
		return New(http.StatusNotFound, MsgUserNotFound)
	case errors.Is(err, record.ErrUnauthorized):
		return New(http.StatusUnauthorized, MsgTokenRequired)
	case errors.Is(err, record.ErrUnknownReporter):
		return New(http.StatusUnauthorized, MsgAccountMissing)
	case errors.Is(err, session.ErrUnauthorized):
		return New(http.StatusForbidden, MsgTokenInvalid)
	}
	return New(http.StatusInternalServerError, fallback)
}

// Write отдаёт ошибку из middleware, где ещё нет ответа huma.
func Write(ctx huma.Context, status int, msg string) {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.SetStatus(status)
	_ = json.NewEncoder(ctx.BodyWriter()).Encode(New(status, msg))
}

// Handler отвечает фиксированной ошибкой; для маршрутов вне huma.
func Handler(status int, msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(New(status, msg))
	}
}
