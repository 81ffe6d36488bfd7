package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"healthwatch/internal/app/server/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		wantDebug bool
	}{
		{name: "local environment", env: config.EnvLocal, wantDebug: true},
		{name: "dev environment", env: config.EnvDev, wantDebug: true},
		{name: "prod environment", env: config.EnvProd, wantDebug: false},
		{name: "unknown environment falls back to prod", env: "staging", wantDebug: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.env)
			require.NotNil(t, log)

			ctx := context.Background()
			assert.Equal(t, tt.wantDebug, log.Enabled(ctx, slog.LevelDebug))
			assert.True(t, log.Enabled(ctx, slog.LevelInfo))
		})
	}
}

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug}}
	log := slog.New(opts.NewPrettyHandler(&buf)).With("component", "test")

	log.Info("case submitted", slog.String("case_id", "abc"))

	out := buf.String()
	assert.Contains(t, out, "case submitted")
	assert.Contains(t, out, `"case_id": "abc"`)
	assert.Contains(t, out, `"component": "test"`)
}

func TestErr(t *testing.T) {
	assert.Equal(t, "boom", Err(errors.New("boom")).Value.String())
	assert.Equal(t, "", Err(nil).Value.String())
}
