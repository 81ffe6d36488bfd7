package user

import (
	"context"

	"healthwatch/internal/app/server/api/http/httperr"
	"healthwatch/internal/domain/session"
	"healthwatch/internal/domain/user"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Middlewares: отдельные цепочки для каждой операции, у signup и login свои лимиты.
type Middlewares struct {
	Signup huma.Middlewares
	Login  huma.Middlewares
	Reset  huma.Middlewares
}

type Handler struct {
	service    user.Servicer
	session    session.Servicer
	log        *slog.Logger
	middleware Middlewares
}

func NewHandler(service user.Servicer, session session.Servicer, log *slog.Logger, middleware Middlewares) *Handler {
	return &Handler{
		service:    service,
		session:    session,
		log:        log.With("component", "user_handler"),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.signupOp(), h.signup)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.resetPasswordOp(), h.resetPassword)
}

func (h *Handler) signup(ctx context.Context, input *signupInput) (*authOutput, error) {
	u, err := h.service.Register(ctx, input.Body.Name, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, h.fail(err, "Server error during signup")
	}
	return h.issue(ctx, u, "User created successfully", "Server error during signup")
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*authOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, h.fail(err, "Server error during login")
	}
	return h.issue(ctx, u, "Login successful", "Server error during login")
}

func (h *Handler) resetPassword(ctx context.Context, input *resetInput) (*resetOutput, error) {
	if err := h.service.RequestPasswordReset(ctx, input.Body.Email); err != nil {
		return nil, h.fail(err, "Server error during password reset")
	}
	return &resetOutput{
		Body: MessageResponse{Message: "Password reset link sent to your email"},
	}, nil
}

func (h *Handler) issue(ctx context.Context, u user.User, message, fallback string) (*authOutput, error) {
	token, err := h.session.Create(ctx, u.ID, u.Email)
	if err != nil {
		return nil, h.fail(err, fallback)
	}
	return &authOutput{
		Body: AuthResponse{
			Message: message,
			Token:   token,
			User:    u.Profile(),
		},
	}, nil
}

func (h *Handler) fail(err error, fallback string) error {
	he := httperr.From(err, fallback)
	if he.Status >= 500 {
		h.log.Error(fallback, "error", err)
	}
	return he
}
