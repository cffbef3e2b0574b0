package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/stretchr/testify/assert"
)

func TestSlogLogger_WritesJSONWithService(t *testing.T) {
	buf := new(bytes.Buffer)
	l := NewWithWriter(buf, slog.LevelDebug)

	l.Info(context.Background(), "backend request", "path", "/api/projects")

	output := buf.String()
	assert.Contains(t, output, `"msg":"backend request"`)
	assert.Contains(t, output, `"service":"marketplace-console"`)
	assert.Contains(t, output, `"path":"/api/projects"`)
	assert.NotContains(t, output, "trace_id")
}

func TestSlogLogger_AddsTraceIDWhenSegmentExists(t *testing.T) {
	buf := new(bytes.Buffer)
	l := NewWithWriter(buf, slog.LevelDebug)

	ctx, seg := xray.BeginSegment(context.Background(), "console-test")
	defer seg.Close(nil)

	l.Warn(ctx, "backend rejected request")

	if !strings.Contains(buf.String(), "trace_id") {
		t.Fatalf("expected trace_id in output: %s", buf.String())
	}
}

func TestSlogLogger_RespectsLevel(t *testing.T) {
	buf := new(bytes.Buffer)
	l := NewWithWriter(buf, slog.LevelWarn)

	l.Debug(context.Background(), "hidden")
	l.Info(context.Background(), "hidden too")

	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
