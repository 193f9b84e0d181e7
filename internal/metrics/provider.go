// Package metrics provides OpenTelemetry metrics instrumentation with Prometheus export:
// use case counters, HTTP request metrics and gauges over today's outreach counters.
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Provider owns the meter provider and the Prometheus registry it exports to.
type Provider struct {
	namespace     string
	meterProvider *sdkmetric.MeterProvider
	registry      *prometheus.Registry
}

// NewProvider creates a provider whose registry also carries the Go runtime and
// process collectors.
func NewProvider(namespace string) (*Provider, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	return &Provider{
		namespace:     namespace,
		meterProvider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter)),
		registry:      registry,
	}, nil
}

// Handler serves the registry in Prometheus exposition format. A failing collector
// drops its own series without failing the scrape.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

// MeterProvider returns the OpenTelemetry meter provider.
func (p *Provider) MeterProvider() *sdkmetric.MeterProvider {
	return p.meterProvider
}

// DailyCounts is a snapshot of the current day's outreach counters.
type DailyCounts struct {
	Sent     int
	Replies  int
	Positive int
	Bounces  int
	Limit    int
}

// DailyCountsFunc reads today's counters at scrape time.
type DailyCountsFunc func(ctx context.Context) (DailyCounts, error)

// RegisterDailyGauges exposes today's counters as {namespace}_daily_events{kind=...}
// and the remaining default send capacity as {namespace}_daily_send_headroom.
func (p *Provider) RegisterDailyGauges(read DailyCountsFunc) error {
	meter := p.meterProvider.Meter(p.namespace)

	events, err := meter.Int64ObservableGauge(
		fmt.Sprintf("%s_daily_events", p.namespace),
		otelmetric.WithDescription("Outreach events counted for the current day"),
		otelmetric.WithUnit("{event}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create daily events gauge: %w", err)
	}

	headroom, err := meter.Int64ObservableGauge(
		fmt.Sprintf("%s_daily_send_headroom", p.namespace),
		otelmetric.WithDescription("Sends left today under the default daily limit"),
		otelmetric.WithUnit("{email}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create daily headroom gauge: %w", err)
	}

	_, err = meter.RegisterCallback(func(ctx context.Context, o otelmetric.Observer) error {
		counts, err := read(ctx)
		if err != nil {
			return err
		}
		for kind, value := range map[string]int{
			"sent":     counts.Sent,
			"reply":    counts.Replies,
			"positive": counts.Positive,
			"bounce":   counts.Bounces,
		} {
			o.ObserveInt64(events, int64(value), otelmetric.WithAttributes(attribute.String("kind", kind)))
		}
		o.ObserveInt64(headroom, int64(max(counts.Limit-counts.Sent, 0)))
		return nil
	}, events, headroom)
	if err != nil {
		return fmt.Errorf("failed to register daily gauges: %w", err)
	}
	return nil
}

// Shutdown flushes and stops the meter provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.meterProvider == nil {
		return nil
	}
	return p.meterProvider.Shutdown(ctx)
}
