package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"healthwatch/internal/app/server/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func memoryConfig(t *testing.T) *config.Config {
	cfg := &config.Config{Env: config.EnvLocal}
	cfg.Auth.Secret = "s"
	cfg.Upload.Backend = config.BlobLocal
	cfg.Upload.Dir = t.TempDir()
	cfg.Upload.MaxBytes = 1 << 20
	cfg.Upload.URLPath = "/uploads"
	cfg.Server.CORSOrigins = []string{"*"}
	cfg.Seed.Alerts = true
	return cfg
}

func TestOpenStores_ProdRequiresDatabase(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Env = config.EnvProd

	_, err := OpenStores(context.Background(), cfg, slog.Default())
	assert.ErrorIs(t, err, ErrNoDatabase)
}

func TestNew_InMemorySeedsAlerts(t *testing.T) {
	ctx := context.Background()
	app, err := New(ctx, memoryConfig(t), slog.Default())
	require.NoError(t, err)
	t.Cleanup(app.close)

	n, err := app.stores.Alerts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Server.RunAddress = "127.0.0.1:0"
	app, err := New(context.Background(), cfg, slog.Default())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, app.Run(ctx))
}

func TestNew_WarnsOnDefaultSecret(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	cfg := memoryConfig(t)
	cfg.Seed.Alerts = false
	cfg.Auth.Secret = config.SecretKey
	cfg.Auth.DefaultSecret = true

	app, err := New(context.Background(), cfg, log)
	require.NoError(t, err)
	t.Cleanup(app.close)

	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), "JWT_SECRET is not set")
}
