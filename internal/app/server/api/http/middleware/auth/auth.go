package auth

import (
	"context"
	"net/http"
	"strings"

	"healthwatch/internal/app/server/api/http/httperr"
	"healthwatch/internal/domain/session"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Auth struct {
	session session.Servicer
	log     *slog.Logger
}

func New(session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		session: session,
		log:     log.With("component", "auth_middleware"),
	}
}

// Identity: проверенный владелец токена.
type Identity struct {
	UserID string
	Email  string
}

type contextKey string

const identityKey contextKey = "identity"

const bearerPrefix = "Bearer "

// Middleware возвращает middleware для Huma с сигнатурой func(ctx Context, next func(Context))
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")

		token, ok := strings.CutPrefix(header, bearerPrefix)
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			a.log.Debug("missing bearer token", "path", ctx.URL().Path)
			httperr.Write(ctx, http.StatusUnauthorized, httperr.MsgTokenRequired)
			return
		}

		// Валидируем токен
		claims, err := a.session.Validate(ctx.Context(), token)
		if err != nil {
			a.log.Debug("token rejected", "path", ctx.URL().Path, "error", err)
			httperr.Write(ctx, http.StatusForbidden, httperr.MsgTokenInvalid)
			return
		}

		id := Identity{UserID: claims.UserID, Email: claims.Email}
		next(huma.WithContext(ctx, WithIdentity(ctx.Context(), id)))
	}
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok && id.UserID != ""
}

// UserID возвращает пустую строку, если запрос не прошёл через Middleware.
func UserID(ctx context.Context) string {
	id, _ := FromContext(ctx)
	return id.UserID
}
