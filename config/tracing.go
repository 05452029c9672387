package config

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/akeren/interest-waitlist/internal/log"
	"github.com/akeren/interest-waitlist/pkg/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	defaultOTLPEndpoint = "http://localhost:4318"
	defaultOTLPPath     = "/v1/traces"
)

type otlpEndpoint struct {
	hostPort string
	path     string
	insecure bool
}

func (e otlpEndpoint) options() []otlptracehttp.Option {
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(e.hostPort),
		otlptracehttp.WithURLPath(e.path),
	}
	if e.insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return opts
}

// SetupTracing installs a global OTLP/HTTP tracer provider when
// OTEL_TRACES_ENABLED is true. It returns a nil shutdown func otherwise.
func SetupTracing(logger *log.Logger) (func(context.Context) error, error) {
	if !utils.IsTracingEnabled() {
		return nil, nil
	}

	raw := utils.GetEnvTrimmedOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", defaultOTLPEndpoint)
	endpoint, err := parseOTLPEndpoint(raw)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	exporter, err := otlptracehttp.New(ctx, endpoint.options()...)
	if err != nil {
		return nil, fmt.Errorf("setup tracing exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(traceResourceAttributes()...))
	if err != nil {
		return nil, fmt.Errorf("setup tracing resource: %w", err)
	}

	ratio := traceSampleRatio()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	logger.Info("OpenTelemetry tracing enabled", "endpoint", raw, "sample_ratio", ratio)
	return tp.Shutdown, nil
}

func traceResourceAttributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("service.name", utils.OTelServiceName()),
		attribute.String("service.version", utils.ServiceVersion()),
	}
	if env := GetAppEnv(); env != "" {
		attrs = append(attrs, attribute.String("deployment.environment", env))
	}
	return attrs
}

// traceSampleRatio reads OTEL_TRACES_SAMPLER_RATIO, clamped to [0, 1].
// Unset or invalid means sample everything.
func traceSampleRatio() float64 {
	ratio, err := strconv.ParseFloat(utils.GetEnvTrimmed("OTEL_TRACES_SAMPLER_RATIO"), 64)
	if err != nil {
		return 1
	}
	return min(1, max(0, ratio))
}

// parseOTLPEndpoint accepts http(s)://host:port[/path] or a bare host:port.
// A bare host:port is plain HTTP.
func parseOTLPEndpoint(raw string) (otlpEndpoint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return otlpEndpoint{}, fmt.Errorf("empty OTLP endpoint")
	}

	if !strings.Contains(raw, "://") {
		if strings.ContainsAny(raw, "/?#") {
			return otlpEndpoint{}, fmt.Errorf("invalid OTLP endpoint %q: use http://host:port[/path] when giving a path", raw)
		}
		return otlpEndpoint{hostPort: raw, path: defaultOTLPPath, insecure: true}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return otlpEndpoint{}, fmt.Errorf("invalid OTLP endpoint %q: %w", raw, err)
	}
	if u.Host == "" {
		return otlpEndpoint{}, fmt.Errorf("invalid OTLP endpoint %q: missing host", raw)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return otlpEndpoint{}, fmt.Errorf("unsupported OTLP endpoint scheme %q", u.Scheme)
	}

	path := u.EscapedPath()
	if path == "" || path == "/" {
		path = defaultOTLPPath
	}

	return otlpEndpoint{hostPort: u.Host, path: path, insecure: scheme == "http"}, nil
}
