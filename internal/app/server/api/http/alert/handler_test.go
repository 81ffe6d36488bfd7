package alert

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"healthwatch/internal/app/server/api/http/httperr"
	"healthwatch/internal/domain/alert"
	"healthwatch/internal/infrastructure/storage/memory"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Submit(ctx context.Context, reporterID string, in alert.Input) (alert.Alert, error) {
	args := m.Called(ctx, reporterID, in)
	return args.Get(0).(alert.Alert), args.Error(1)
}

func (m *MockService) List(ctx context.Context) ([]alert.Alert, error) {
	args := m.Called(ctx)
	return args.Get(0).([]alert.Alert), args.Error(1)
}

func newTestAPI(t *testing.T, svc alert.Servicer) humatest.TestAPI {
	httperr.Install()
	cfg := huma.DefaultConfig("Test API", "1.0.0")
	cfg.CreateHooks = nil
	_, api := humatest.New(t, cfg)
	NewHandler(svc, slog.Default(), nil).SetupRoutes(api)
	return api
}

func TestHandler_CreateIsUnattributed(t *testing.T) {
	svc := new(MockService)
	svc.On("Submit", mock.Anything, "", mock.MatchedBy(func(in alert.Input) bool {
		return in.Title == "Boil water" && in.Severity == ""
	})).Return(alert.Alert{ID: "a1", Title: "Boil water", Severity: alert.SeverityMedium, IsActive: true}, nil)

	resp := newTestAPI(t, svc).Post("/api/alerts", map[string]any{
		"title":   "Boil water",
		"message": "Boil before drinking",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var body struct {
		Message string         `json:"message"`
		Alert   map[string]any `json:"alert"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Alert created successfully", body.Message)
	assert.Equal(t, "medium", body.Alert["severity"])
	assert.NotContains(t, body.Alert, "reportedBy")

	svc.AssertExpectations(t)
}

func TestHandler_CreateRejectsUnknownSeverity(t *testing.T) {
	store := memory.New()
	svc := alert.NewService(store.Alerts(), slog.Default())

	resp := newTestAPI(t, svc).Post("/api/alerts", map[string]any{
		"title":    "Boil water",
		"message":  "Boil before drinking",
		"severity": "apocalyptic",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "severity")

	n, err := store.Alerts().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestHandler_List(t *testing.T) {
	svc := new(MockService)
	svc.On("List", mock.Anything).Return([]alert.Alert{}, nil)

	resp := newTestAPI(t, svc).Get("/api/alerts")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"alerts":[]}`, resp.Body.String())
}
