package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type idOutput struct {
	Body struct {
		RequestID string `json:"requestId"`
	}
}

func newTestAPI(t *testing.T, buf *bytes.Buffer) humatest.TestAPI {
	log := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := huma.DefaultConfig("Test API", "1.0.0")
	cfg.CreateHooks = nil
	_, api := humatest.New(t, cfg)
	mws := huma.Middlewares{New(log).Middleware()}

	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
		Middlewares: mws,
	}, func(ctx context.Context, _ *struct{}) (*idOutput, error) {
		out := &idOutput{}
		out.Body.RequestID = RequestID(ctx)
		return out, nil
	})
	huma.Register(api, huma.Operation{
		OperationID: "missing",
		Method:      http.MethodGet,
		Path:        "/missing",
		Middlewares: mws,
	}, func(context.Context, *struct{}) (*struct{}, error) {
		return nil, huma.Error404NotFound("nope")
	})
	return api
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestMiddleware_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	api := newTestAPI(t, &buf)

	resp := api.Get("/ping", "Authorization: Bearer secret-token")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.NotContains(t, buf.String(), "secret-token")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "ping", entry["operation"])
	assert.Equal(t, "/ping", entry["path"])
	assert.EqualValues(t, 200, entry["status"])

	id := resp.Header().Get(HeaderRequestID)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, entry["request_id"])
	assert.JSONEq(t, `{"requestId":"`+id+`"}`, resp.Body.String())
}

func TestMiddleware_KeepsClientRequestID(t *testing.T) {
	var buf bytes.Buffer
	resp := newTestAPI(t, &buf).Get("/ping", HeaderRequestID+": abc-123")

	assert.Equal(t, "abc-123", resp.Header().Get(HeaderRequestID))
	assert.Equal(t, "abc-123", lastEntry(t, &buf)["request_id"])
}

func TestMiddleware_ClientErrorsLogAsWarn(t *testing.T) {
	var buf bytes.Buffer
	resp := newTestAPI(t, &buf).Get("/missing")

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "WARN", lastEntry(t, &buf)["level"])
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, levelFor(http.StatusCreated))
	assert.Equal(t, slog.LevelWarn, levelFor(http.StatusTooManyRequests))
	assert.Equal(t, slog.LevelError, levelFor(http.StatusServiceUnavailable))
}
