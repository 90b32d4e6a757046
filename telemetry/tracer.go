// Package telemetry installs the OpenTelemetry tracer provider used by the
// request tracing middleware.
package telemetry

import (
	"fmt"
	"io"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const serviceName = "editorial"

// NewTracerProvider builds a provider for the named exporter. "none" and ""
// return a nil provider; "stdout" writes finished spans as JSON to w.
func NewTracerProvider(exporter string, w io.Writer) (*sdktrace.TracerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(exporter)) {
	case "", "none":
		return nil, nil
	case "stdout", "console":
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		return sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
		), nil
	default:
		return nil, fmt.Errorf("unsupported OTEL_TRACES_EXPORTER %q", exporter)
	}
}
