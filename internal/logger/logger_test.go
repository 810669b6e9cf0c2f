package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, opts Options) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	opts.Output = buf
	Init(opts)
	t.Cleanup(func() { Init(Options{}) })
	return buf
}

func TestInit_Levels(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		logged  []string
		skipped []string
	}{
		{"default", Options{}, []string{"info", "warn", "error"}, []string{"debug"}},
		{"debug", Options{Debug: true}, []string{"debug", "info", "warn", "error"}, nil},
		{"quiet", Options{Quiet: true}, []string{"error"}, []string{"debug", "info", "warn"}},
		{"quiet wins over debug", Options{Quiet: true, Debug: true}, []string{"error"}, []string{"debug"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, tt.opts)

			Debug("msg-debug")
			Info("msg-info")
			Warn("msg-warn")
			Error("msg-error")

			for _, l := range tt.logged {
				assert.Contains(t, buf.String(), "msg-"+l)
			}
			for _, l := range tt.skipped {
				assert.NotContains(t, buf.String(), "msg-"+l)
			}
		})
	}
}

func TestInit_JSONFormat(t *testing.T) {
	buf := capture(t, Options{JSON: true})

	Warn("stage failed, keeping its input", "stage", "sanitize")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "stage failed, keeping its input", rec["msg"])
	assert.Equal(t, "sanitize", rec["stage"])
}

func TestInit_TextFormat(t *testing.T) {
	buf := capture(t, Options{})

	Info("run done", "profile", "editorial", "changes", 3)

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "profile=editorial")
	assert.Contains(t, out, "changes=3")
}

func TestInit_CustomLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	custom := slog.New(slog.NewJSONHandler(buf, nil))
	Init(Options{Logger: custom, Debug: true})
	t.Cleanup(func() { Init(Options{}) })

	Info("from custom")
	assert.Contains(t, buf.String(), `"msg":"from custom"`)
	assert.False(t, Enabled(slog.LevelDebug))
}

func TestWith(t *testing.T) {
	buf := capture(t, Options{})

	With("mode", "commerce").Info("resolved")
	assert.Contains(t, buf.String(), "mode=commerce")
}

func TestContextVariants(t *testing.T) {
	buf := capture(t, Options{Debug: true})
	ctx := context.Background()

	DebugContext(ctx, "c-debug")
	InfoContext(ctx, "c-info")
	WarnContext(ctx, "c-warn")
	ErrorContext(ctx, "c-error")

	for _, msg := range []string{"c-debug", "c-info", "c-warn", "c-error"} {
		assert.Contains(t, buf.String(), msg)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"WARN", slog.LevelWarn, true},
		{" error ", slog.LevelError, true},
		{"loud", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
