package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"healthwatch/internal/domain/session"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"
)

type MockSession struct {
	mock.Mock
}

func (m *MockSession) Create(ctx context.Context, userID, email string) (string, error) {
	args := m.Called(ctx, userID, email)
	return args.String(0), args.Error(1)
}

func (m *MockSession) Validate(ctx context.Context, token string) (session.Claims, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(session.Claims), args.Error(1)
}

type whoamiOutput struct {
	Body struct {
		UserID string `json:"userId"`
	}
}

func newTestAPI(t *testing.T, sess session.Servicer) humatest.TestAPI {
	cfg := huma.DefaultConfig("Test API", "1.0.0")
	cfg.CreateHooks = nil
	_, api := humatest.New(t, cfg)
	mw := New(sess, slog.Default())

	huma.Register(api, huma.Operation{
		OperationID: "whoami",
		Method:      http.MethodGet,
		Path:        "/whoami",
		Middlewares: huma.Middlewares{mw.Middleware()},
	}, func(ctx context.Context, _ *struct{}) (*whoamiOutput, error) {
		out := &whoamiOutput{}
		out.Body.UserID = UserID(ctx)
		return out, nil
	})
	return api
}

func TestMiddleware(t *testing.T) {
	sess := new(MockSession)
	sess.On("Validate", mock.Anything, "good").Return(session.Claims{UserID: "u1", Email: "asha@test.org"}, nil)
	sess.On("Validate", mock.Anything, "stale").
		Return(session.Claims{}, fmt.Errorf("%w: %w", session.ErrUnauthorized, session.ErrExpiredToken))

	api := newTestAPI(t, sess)

	tests := []struct {
		name       string
		header     []any
		wantStatus int
		wantBody   string
	}{
		{name: "no header", wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Access token required"}`},
		{name: "wrong scheme", header: []any{"Authorization: Basic abc"}, wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Access token required"}`},
		{name: "empty bearer", header: []any{"Authorization: Bearer "}, wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Access token required"}`},
		{name: "expired", header: []any{"Authorization: Bearer stale"}, wantStatus: http.StatusForbidden, wantBody: `{"error":"Invalid or expired token"}`},
		{name: "valid", header: []any{"Authorization: Bearer good"}, wantStatus: http.StatusOK, wantBody: `{"userId":"u1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := api.Get("/whoami", tt.header...)
			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.JSONEq(t, tt.wantBody, resp.Body.String())
		})
	}
}

func TestFromContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(httptest.NewRequest(http.MethodGet, "/", nil).Context(), Identity{UserID: "u1"})
	id, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u1", id.UserID)
}
