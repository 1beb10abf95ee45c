// Package otel bootstraps OpenTelemetry tracing for iconkit commands.
package otel

import (
	"context"
	"os"
	"runtime/debug"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	envEndpoint = "ICONKIT_OTEL_ENDPOINT"
	envEnabled  = "ICONKIT_OTEL_ENABLED"

	instrumentationName = "github.com/louisbranch/iconkit"
	serviceName         = "iconkit"

	// CommandKey names the iconkit subcommand (generate, sync) a trace
	// belongs to.
	CommandKey = attribute.Key("iconkit.command")
	// UpstreamRepoKey and UpstreamTagKey describe the icon source a span
	// works on.
	UpstreamRepoKey = attribute.Key("iconkit.upstream.repo")
	UpstreamTagKey  = attribute.Key("iconkit.upstream.tag")
)

// Setup initialises OpenTelemetry tracing for an iconkit subcommand.
//
// Tracing is opt-in: when ICONKIT_OTEL_ENDPOINT is empty or
// ICONKIT_OTEL_ENABLED is "false", Setup returns a no-op shutdown function and
// no global provider is registered. Spans started through Tracer are then
// no-ops.
//
// The returned shutdown function flushes pending spans and should be deferred
// by the caller.
func Setup(ctx context.Context, command string) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	if strings.EqualFold(os.Getenv(envEnabled), "false") {
		return noop, nil
	}

	endpoint := os.Getenv(envEndpoint)
	if endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(endpoint),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(resourceAttributes(command, buildVersion())...),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// resourceAttributes identifies the process: every subcommand reports as the
// iconkit service and is told apart by CommandKey.
func resourceAttributes(command, version string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(serviceName),
		CommandKey.String(command),
	}
	if version != "" {
		attrs = append(attrs, semconv.ServiceVersion(version))
	}
	return attrs
}

// buildVersion is the main module version stamped by the go tool, or empty
// for development builds.
func buildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "(devel)" {
		return ""
	}
	return info.Main.Version
}

// Tracer returns the iconkit tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}
