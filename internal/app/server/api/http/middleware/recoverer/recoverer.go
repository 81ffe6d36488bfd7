package recoverer

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"healthwatch/internal/app/server/api/http/httperr"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// New превращает панику в обработчике в ответ 500, процесс продолжает работу.
func New(log *slog.Logger) func(huma.Context, func(huma.Context)) {
	log = log.With("component", "recoverer")
	return func(ctx huma.Context, next func(huma.Context)) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			log.Error("panic in handler",
				"path", ctx.URL().Path,
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()),
			)
			httperr.Write(ctx, http.StatusInternalServerError, httperr.MsgInternal)
		}()
		next(ctx)
	}
}
