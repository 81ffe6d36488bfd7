package casereport

import (
	"context"

	"healthwatch/internal/app/server/api/http/httperr"
	"healthwatch/internal/app/server/api/http/middleware/auth"
	"healthwatch/internal/domain/casereport"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service    casereport.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service casereport.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "case_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.submitOp(), h.submit)
	huma.Register(api, h.listOp(), h.list)
}

func (h *Handler) submit(ctx context.Context, input *caseSubmitInput) (*caseSubmitOutput, error) {
	rep, err := h.service.Submit(ctx, auth.UserID(ctx), input.toDomain())
	if err != nil {
		return nil, httperr.From(err, "Server error while submitting case")
	}

	out := &caseSubmitOutput{}
	out.Body.Message = "Case report submitted successfully"
	out.Body.Case = rep
	return out, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*caseListOutput, error) {
	cases, err := h.service.List(ctx)
	if err != nil {
		return nil, httperr.From(err, "Server error while fetching cases")
	}

	out := &caseListOutput{}
	out.Body.Cases = cases
	return out, nil
}
