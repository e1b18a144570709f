package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PauloHFS/blogicum/internal/config"
)

func TestInitNoneIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), &config.Config{OTelExporter: "none"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestProviderExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	exporter, err := newStdoutExporter(&buf)
	require.NoError(t, err)

	tp := NewProvider(exporter)
	_, span := tp.Tracer("test").Start(context.Background(), "blog.PostDetail")
	span.End()

	require.NoError(t, tp.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), "blog.PostDetail")
	assert.Contains(t, buf.String(), "blogicum")
}
