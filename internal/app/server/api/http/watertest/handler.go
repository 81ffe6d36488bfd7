package watertest

import (
	"context"

	"healthwatch/internal/app/server/api/http/httperr"
	"healthwatch/internal/app/server/api/http/middleware/auth"
	"healthwatch/internal/domain/watertest"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service    watertest.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service watertest.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "water_test_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.submitOp(), h.submit)
	huma.Register(api, h.listOp(), h.list)
}

func (h *Handler) submit(ctx context.Context, input *waterTestSubmitInput) (*waterTestSubmitOutput, error) {
	wt, err := h.service.Submit(ctx, auth.UserID(ctx), input.toDomain())
	if err != nil {
		return nil, httperr.From(err, "Server error while submitting water test")
	}

	out := &waterTestSubmitOutput{}
	out.Body.Message = "Water test report submitted successfully"
	out.Body.WaterTest = wt
	return out, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*waterTestListOutput, error) {
	tests, err := h.service.List(ctx)
	if err != nil {
		return nil, httperr.From(err, "Server error while fetching water tests")
	}

	out := &waterTestListOutput{}
	out.Body.WaterTests = tests
	return out, nil
}
