package slogx_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/sessionkit/pkg/slogx"
)

func TestNewLevelParsing(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		level   string
		debugOn bool
		warnOn  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, true},
		{"error", false, false},
		{"", false, true},
		{"garbage", false, true},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			logger := slogx.New(slogx.Config{Level: tt.level})
			require.Equal(t, tt.debugOn, logger.Enabled(ctx, slog.LevelDebug))
			require.Equal(t, tt.warnOn, logger.Enabled(ctx, slog.LevelWarn))
		})
	}
}

func TestContextCarriesLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := slogx.WithContext(context.Background(), logger)
	slogx.FromContext(ctx).Info("hello")
	require.Contains(t, buf.String(), "hello")

	// Without an attached logger the default is served, never nil.
	require.NotNil(t, slogx.FromContext(context.Background()))
}

func TestWithRequestIDTagsRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := slogx.WithContext(context.Background(), logger)
	ctx = slogx.WithRequestID(ctx, "01TESTREQUESTID")

	slogx.FromContext(ctx).Info("core request")
	require.Contains(t, buf.String(), "req_id=01TESTREQUESTID")
}
