package tracing

import (
	"os"
	"strings"

	"inventory-reservation/internal/pkg/config"
	"inventory-reservation/internal/pkg/errs"

	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterJaeger = "jaeger"
)

var ErrUnknownExporter = errs.New("unknown tracing exporter")

// NewTracerProvider builds the SDK provider for cfg. Extra options are
// appended last, which lets tests attach a span recorder.
func NewTracerProvider(cfg config.TracingConfig, extra ...sdktrace.TracerProviderOption) (*sdktrace.TracerProvider, error) {
	exporter, err := newExporter(cfg)
	if err != nil {
		return nil, err
	}

	ratio := cfg.SampleRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(cfg.ServiceName),
		)),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}
	opts = append(opts, extra...)

	return sdktrace.NewTracerProvider(opts...), nil
}

func newExporter(cfg config.TracingConfig) (sdktrace.SpanExporter, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Exporter)) {
	case "", ExporterNone:
		return nil, nil
	case ExporterStdout:
		exp, err := stdouttrace.New(stdouttrace.WithWriter(os.Stdout))
		if err != nil {
			return nil, errs.Wrap(err, "create stdout exporter")
		}
		return exp, nil
	case ExporterJaeger:
		exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.JaegerEndpoint)))
		if err != nil {
			return nil, errs.Wrap(err, "create jaeger exporter")
		}
		return exp, nil
	default:
		return nil, errs.Wrapf(ErrUnknownExporter, "%q", cfg.Exporter)
	}
}
