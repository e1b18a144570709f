package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/PauloHFS/blogicum/internal/config"
)

const instrumentationName = "github.com/PauloHFS/blogicum"

// ShutdownFunc descarrega os spans pendentes.
type ShutdownFunc func(context.Context) error

// Init instala o tracer provider global conforme OTEL_EXPORTER. Com "none" o
// provider no-op padrão do otel continua ativo.
func Init(ctx context.Context, cfg *config.Config) (ShutdownFunc, error) {
	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.OTelExporter {
	case "stdout":
		exporter, err = newStdoutExporter(os.Stdout)
	case "otlp":
		exporter, err = otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(cfg.OTelEndpoint),
			otlptracehttp.WithInsecure(),
		)
	default:
		return func(context.Context) error { return nil }, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s exporter: %w", cfg.OTelExporter, err)
	}

	tp := NewProvider(exporter)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

func newStdoutExporter(w io.Writer) (sdktrace.SpanExporter, error) {
	return stdouttrace.New(stdouttrace.WithWriter(w))
}

func NewProvider(exporter sdktrace.SpanExporter) *sdktrace.TracerProvider {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", "blogicum"),
		attribute.String("service.version", version),
	)

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
}

// Tracer devolve o tracer da aplicação a partir do provider global.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}
