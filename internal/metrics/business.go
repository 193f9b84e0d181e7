package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics records outreach use case calls and the lead statuses they produce.
type BusinessMetrics interface {
	// ObserveOperation counts one call of domain/operation and records its latency.
	// The status label is derived from err with Outcome.
	ObserveOperation(ctx context.Context, domain, operation string, elapsed time.Duration, err error)

	// RecordLeadStatus counts a lead reaching status, e.g. "sent_step1" or "stopped_bounce".
	RecordLeadStatus(ctx context.Context, status string)
}

type otelBusinessMetrics struct {
	operations metric.Int64Counter
	latency    metric.Float64Histogram
	statuses   metric.Int64Counter
}

// NewBusinessMetrics registers the outreach instruments under namespace:
// {ns}_operations_total, {ns}_operation_duration_seconds and {ns}_lead_status_total.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)
	b := &otelBusinessMetrics{}
	var err error

	if b.operations, err = meter.Int64Counter(
		namespace+"_operations_total",
		metric.WithDescription("Outreach use case calls by outcome"),
		metric.WithUnit("{operation}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	if b.latency, err = meter.Float64Histogram(
		namespace+"_operation_duration_seconds",
		metric.WithDescription("Outreach use case latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	); err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	if b.statuses, err = meter.Int64Counter(
		namespace+"_lead_status_total",
		metric.WithDescription("Leads reaching each lifecycle status"),
		metric.WithUnit("{lead}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create lead status counter: %w", err)
	}

	return b, nil
}

func (b *otelBusinessMetrics) ObserveOperation(
	ctx context.Context,
	domain, operation string,
	elapsed time.Duration,
	err error,
) {
	attrs := metric.WithAttributes(
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", Outcome(err)),
	)
	b.operations.Add(ctx, 1, attrs)
	b.latency.Record(ctx, elapsed.Seconds(), attrs)
}

func (b *otelBusinessMetrics) RecordLeadStatus(ctx context.Context, status string) {
	b.statuses.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

// NoOpBusinessMetrics discards everything; used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics returns a BusinessMetrics that records nothing.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return NoOpBusinessMetrics{}
}

func (NoOpBusinessMetrics) ObserveOperation(context.Context, string, string, time.Duration, error) {}

func (NoOpBusinessMetrics) RecordLeadStatus(context.Context, string) {}
