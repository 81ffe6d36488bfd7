package alert

import (
	"context"

	"healthwatch/internal/app/server/api/http/httperr"
	"healthwatch/internal/domain/alert"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service    alert.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service alert.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "alert_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*alertListOutput, error) {
	alerts, err := h.service.List(ctx)
	if err != nil {
		return nil, httperr.From(err, "Server error while fetching alerts")
	}

	out := &alertListOutput{}
	out.Body.Alerts = alerts
	return out, nil
}

// create не привязывает объявление к автору, токен нужен только для доступа.
func (h *Handler) create(ctx context.Context, input *alertCreateInput) (*alertCreateOutput, error) {
	a, err := h.service.Submit(ctx, "", input.toDomain())
	if err != nil {
		return nil, httperr.From(err, "Server error while creating alert")
	}

	out := &alertCreateOutput{}
	out.Body.Message = "Alert created successfully"
	out.Body.Alert = a
	return out, nil
}
