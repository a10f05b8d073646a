// Package observability wires OpenTelemetry tracing and metrics behind a
// single lifecycle component. When no OTLP endpoint is configured the
// component is a no-op and the global providers stay at their defaults.
package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/cinevault/cinevault/component"
	"github.com/cinevault/cinevault/logger"
)

// ServiceInfo identifies the service in exported telemetry.
type ServiceInfo struct {
	Name        string
	Version     string
	Environment string
}

// Telemetry is the tracing and metrics component.
type Telemetry struct {
	cfg     Config
	info    ServiceInfo
	log     *logger.Logger
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	started bool
}

// New creates the telemetry component.
func New(cfg Config, info ServiceInfo, log *logger.Logger) *Telemetry {
	cfg.ApplyDefaults()
	return &Telemetry{
		cfg:  cfg,
		info: info,
		log:  log.WithComponent("telemetry"),
	}
}

// Name implements component.Component.
func (t *Telemetry) Name() string { return "telemetry" }

// Start initializes the global tracer and meter providers. Without an
// endpoint it logs and returns immediately.
func (t *Telemetry) Start(ctx context.Context) error {
	if !t.cfg.Enabled() {
		t.log.Debug("Telemetry disabled, no OTLP endpoint configured")
		return nil
	}

	res, err := newResource(t.info)
	if err != nil {
		return fmt.Errorf("telemetry resource: %w", err)
	}

	if err := t.startTracer(ctx, res); err != nil {
		return err
	}
	if err := t.startMeter(ctx, res); err != nil {
		// Roll back the tracer so Stop is never half-armed.
		_ = t.tracer.Shutdown(ctx)
		t.tracer = nil
		return err
	}

	t.started = true
	t.log.Info("Telemetry started", logger.Fields(
		"endpoint", t.cfg.Endpoint,
		"sample_rate", t.cfg.SampleRate,
	))
	return nil
}

func (t *Telemetry) startTracer(ctx context.Context, res *resource.Resource) error {
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(t.cfg.Endpoint)}
	if t.cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("trace exporter: %w", err)
	}

	var sampler sdktrace.Sampler
	switch {
	case t.cfg.SampleRate >= 1.0:
		sampler = sdktrace.AlwaysSample()
	case t.cfg.SampleRate <= 0:
		sampler = sdktrace.NeverSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(t.cfg.SampleRate)
	}

	t.tracer = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)

	otel.SetTracerProvider(t.tracer)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return nil
}

func (t *Telemetry) startMeter(ctx context.Context, res *resource.Resource) error {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(t.cfg.Endpoint)}
	if t.cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("metric exporter: %w", err)
	}

	t.meter = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(t.cfg.MetricInterval))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(t.meter)
	return nil
}

// Stop flushes and shuts down the providers.
func (t *Telemetry) Stop(ctx context.Context) error {
	var firstErr error
	if t.tracer != nil {
		if err := t.tracer.Shutdown(ctx); err != nil {
			firstErr = err
		}
		t.tracer = nil
	}
	if t.meter != nil {
		if err := t.meter.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
		t.meter = nil
	}
	t.started = false
	return firstErr
}

// Health implements component.Component. Disabled telemetry is healthy.
func (t *Telemetry) Health(ctx context.Context) component.Health {
	if !t.cfg.Enabled() {
		return component.Health{Name: t.Name(), Status: component.StatusHealthy, Message: "disabled"}
	}
	if !t.started {
		return component.Health{Name: t.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: t.Name(), Status: component.StatusHealthy}
}

// newResource builds the OpenTelemetry resource carrying service metadata.
func newResource(info ServiceInfo) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(info.Name),
			semconv.ServiceVersion(info.Version),
			attribute.String("environment", info.Environment),
		),
	)
}
