package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	context_ "github.com/mkrupp/messagely/internal/infra/context"
	"github.com/mkrupp/messagely/internal/infra/logging"
)

func TestConsoleHandler_PkgLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		logger    string
		pkgLevels map[string]slog.Level
		level     slog.Level
		wantLine  bool
	}{
		{
			name:     "no filter passes record",
			logger:   "svc.authsvc.auth_service",
			level:    slog.LevelDebug,
			wantLine: true,
		},
		{
			name:      "exact match suppresses lower level",
			logger:    "repo.user",
			pkgLevels: map[string]slog.Level{"repo.user": slog.LevelWarn},
			level:     slog.LevelInfo,
			wantLine:  false,
		},
		{
			name:      "parent match suppresses lower level",
			logger:    "repo.user.sql_user_repository",
			pkgLevels: map[string]slog.Level{"repo": slog.LevelError},
			level:     slog.LevelWarn,
			wantLine:  false,
		},
		{
			name:      "most specific entry wins",
			logger:    "repo.user.sql_user_repository",
			pkgLevels: map[string]slog.Level{"repo": slog.LevelError, "repo.user": slog.LevelDebug},
			level:     slog.LevelInfo,
			wantLine:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			//nolint:exhaustruct
			handler := &logging.ConsoleHandler{
				Output:    &buf,
				Level:     slog.LevelDebug,
				PkgLevels: tt.pkgLevels,
			}

			slog.New(handler).With("logger", tt.logger).Log(context.Background(), tt.level, "hello")

			if tt.wantLine {
				assert.Contains(t, buf.String(), "hello")
				assert.Contains(t, buf.String(), tt.logger)
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestTracingHandler_AddsContextAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	log := slog.New(logging.NewTracingHandler(slog.NewJSONHandler(&buf, nil)))

	ctx := context_.WithTraceID(context.Background(), "trace-123")
	ctx = context_.WithUsername(ctx, "alice")

	log.InfoContext(ctx, "request handled")

	require.Contains(t, buf.String(), `"trace":{"id":"trace-123"}`)
	require.Contains(t, buf.String(), `"requester":{"username":"alice"}`)
}

func TestGetLogger_DiscardOutput(t *testing.T) {
	t.Parallel()

	log := logging.GetLogger("test.discard")
	require.NotNil(t, log)
	log.Info("goes nowhere")
}
