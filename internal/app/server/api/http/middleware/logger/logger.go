package logger

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}

// RequestID возвращает идентификатор запроса, выставленный middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type Logger struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Logger {
	return &Logger{log: log.With(slog.String("component", "http_logger"))}
}

// Middleware пишет одну строку на запрос. Заголовки и тело не логируются: там пароли и токены.
// Идентификатор запроса берётся из X-Request-ID клиента или генерируется и возвращается в ответе.
func (l *Logger) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		reqID := ctx.Header(HeaderRequestID)
		if reqID == "" || len(reqID) > 64 {
			reqID = uuid.NewString()
		}
		ctx.SetHeader(HeaderRequestID, reqID)

		next(huma.WithValue(ctx, requestIDKey{}, reqID))

		status := ctx.Status()
		l.log.Log(ctx.Context(), levelFor(status), "HTTP request",
			slog.String("request_id", reqID),
			slog.String("operation", ctx.Operation().OperationID),
			slog.String("method", ctx.Method()),
			slog.String("path", ctx.URL().Path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("remote_addr", ctx.RemoteAddr()),
		)
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}
