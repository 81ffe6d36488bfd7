package health

import (
	"context"
	"net/http"

	"healthwatch/internal/app/server/api/http/httperr"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const runningMessage = "Health Surveillance API is running"

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db         Pinger
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(db Pinger, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		db:         db,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			h.log.Error("storage ping failed", "error", err)
			return nil, httperr.New(http.StatusServiceUnavailable, "Storage unavailable")
		}
	}

	return &Output{
		Body: HealthResponse{
			Status:  "OK",
			Message: runningMessage,
		},
	}, nil
}
