package watertest

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"healthwatch/internal/app/server/api/http/httperr"
	"healthwatch/internal/app/server/api/http/middleware/auth"
	"healthwatch/internal/domain/user"
	"healthwatch/internal/domain/watertest"
	"healthwatch/internal/infrastructure/storage/memory"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func newTestAPI(t *testing.T) (humatest.TestAPI, *memory.Storage) {
	httperr.Install()
	store := memory.New()
	require.NoError(t, store.Users().Create(context.Background(), &user.User{
		ID: "u1", Name: "Asha", Email: "asha@test.org", PasswordHash: "$2a$hash",
	}))

	asAsha := func(ctx huma.Context, next func(huma.Context)) {
		next(huma.WithContext(ctx, auth.WithIdentity(ctx.Context(), auth.Identity{UserID: "u1", Email: "asha@test.org"})))
	}

	cfg := huma.DefaultConfig("Test API", "1.0.0")
	cfg.CreateHooks = nil
	_, api := humatest.New(t, cfg)
	NewHandler(watertest.NewService(store.WaterTests(), slog.Default()), slog.Default(), huma.Middlewares{asAsha}).SetupRoutes(api)
	return api, store
}

func TestHandler_SubmitAndList(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Post("/api/water-tests", map[string]any{
		"location":      " Ward 5 handpump ",
		"turbidity":     4.5,
		"ph":            7.2,
		"temperature":   26,
		"bacterialTest": "Negative",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var created struct {
		Message   string         `json:"message"`
		WaterTest map[string]any `json:"waterTest"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.Equal(t, "Water test report submitted successfully", created.Message)
	assert.Equal(t, "Ward 5 handpump", created.WaterTest["location"])
	assert.Equal(t, "negative", created.WaterTest["bacterialTest"])

	resp = api.Get("/api/water-tests")
	require.Equal(t, http.StatusOK, resp.Code)

	var list struct {
		WaterTests []map[string]any `json:"waterTests"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list.WaterTests, 1)
	assert.Equal(t, map[string]any{"id": "u1", "name": "Asha", "email": "asha@test.org"}, list.WaterTests[0]["reportedBy"])
	assert.NotContains(t, resp.Body.String(), "$2a$hash")
}

func TestHandler_SubmitRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{name: "ph out of range", body: map[string]any{"location": "W5", "turbidity": 1, "ph": 15}, field: "ph"},
		{name: "negative turbidity", body: map[string]any{"location": "W5", "turbidity": -1, "ph": 7}, field: "turbidity"},
		{name: "unknown bacterial result", body: map[string]any{"location": "W5", "turbidity": 1, "ph": 7, "bacterialTest": "maybe"}, field: "bacterialTest"},
		{name: "blank location", body: map[string]any{"location": "  ", "turbidity": 1, "ph": 7}, field: "location"},
		{name: "missing ph", body: map[string]any{"location": "W5", "turbidity": 1}, field: "ph"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, store := newTestAPI(t)

			resp := api.Post("/api/water-tests", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			assert.Contains(t, body["error"], tt.field)

			list, err := store.WaterTests().List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}
