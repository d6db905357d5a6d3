package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	meter          otelmetric.Meter
	jobCounter     otelmetric.Int64Counter
	jobDuration    otelmetric.Float64Histogram
	logger         Logger
}

// Config selects the service name and optional Jaeger tracing endpoint.
type Config struct {
	ServiceName    string
	JaegerEndpoint string
	SampleRatio    float64
}

// New installs the global meter provider (Prometheus exporter) and, when a Jaeger
// endpoint is configured, the global tracer provider. Failures degrade to no-ops.
func New(cfg Config, log Logger) *Observability {
	o := &Observability{logger: log}

	if tp, err := newTracerProvider(cfg); err != nil {
		log.Warn("tracing disabled", map[string]interface{}{"error": err})
	} else if tp != nil {
		otel.SetTracerProvider(tp)
		o.tracerProvider = tp
	}

	exporter, err := prometheus.New()
	if err != nil {
		log.Warn("failed to create prometheus exporter", map[string]interface{}{"error": err})
		return o
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	o.meterProvider = provider
	o.meter = provider.Meter(cfg.ServiceName)

	o.jobCounter, _ = o.meter.Int64Counter(
		"jobs.processed",
		otelmetric.WithDescription("Number of jobs processed"),
	)
	o.jobDuration, _ = o.meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"),
	)

	return o
}

func (o *Observability) RecordJobProcessed(ctx context.Context, taskType, status string) {
	if o.jobCounter != nil {
		o.jobCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("task_type", taskType),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordJobDuration(ctx context.Context, taskType string, duration time.Duration, status string) {
	if o.jobDuration != nil {
		o.jobDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("task_type", taskType),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if o.tracerProvider != nil {
		if err := o.tracerProvider.Shutdown(ctx); err != nil {
			o.logger.Warn("tracer provider shutdown failed", map[string]interface{}{"error": err})
		}
	}
	if o.meterProvider != nil {
		if err := o.meterProvider.Shutdown(ctx); err != nil {
			o.logger.Warn("meter provider shutdown failed", map[string]interface{}{"error": err})
		}
	}
}
