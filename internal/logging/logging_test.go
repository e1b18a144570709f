package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestWideEvent(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info")

	ctx, event := NewEventContext(context.Background())
	AddToEvent(ctx, slog.String("operation", "post_detail"), slog.Int64("post_id", 7))
	Get().InfoContext(ctx, "request completed", event.Attrs()...)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "blogicum", line["service"])
	assert.Equal(t, "post_detail", line["operation"])
	assert.EqualValues(t, 7, line["post_id"])
}

func TestAddToEventWithoutEvent(t *testing.T) {
	assert.Nil(t, EventFromContext(context.Background()))
	AddToEvent(context.Background(), slog.String("ignored", "yes"))
}
