package server

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	kmetrics "github.com/go-kratos/kratos/v2/middleware/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	promexp "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const (
	meterName             = "lingo-services-media"
	meterShutdownDeadline = 5 * time.Second
)

// Telemetry carries the instruments shared between the HTTP middleware
// and the /metrics endpoint. The registry is private to the service so
// scraping never picks up instruments registered by dependencies on the
// global default.
type Telemetry struct {
	MeterProvider      *sdkmetric.MeterProvider
	RequestCounter     metric.Int64Counter
	SecondsHistogram   metric.Float64Histogram
	PrometheusRegistry *prometheus.Registry
}

// NewTelemetry wires an OTel meter provider into a Prometheus exporter and
// pre-builds the request counter and latency histogram the kratos metrics
// middleware consumes. The returned cleanup flushes the provider on shutdown.
func NewTelemetry(logger log.Logger) (*Telemetry, func(), error) {
	registry := newServiceRegistry()

	exporter, err := promexp.New(
		promexp.WithRegisterer(registry),
		promexp.WithoutUnits(),
	)
	if err != nil {
		return nil, nil, err
	}

	// The histogram view keeps the middleware's default latency buckets.
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithView(kmetrics.DefaultSecondsHistogramView(kmetrics.DefaultServerSecondsHistogramName)),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(meterName)
	requests, err := kmetrics.DefaultRequestsCounter(meter, kmetrics.DefaultServerRequestsCounterName)
	if err != nil {
		return nil, nil, err
	}
	seconds, err := kmetrics.DefaultSecondsHistogram(meter, kmetrics.DefaultServerSecondsHistogramName)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), meterShutdownDeadline)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.NewHelper(logger).Warnf("shutdown meter provider: %v", err)
		}
	}

	return &Telemetry{
		MeterProvider:      provider,
		RequestCounter:     requests,
		SecondsHistogram:   seconds,
		PrometheusRegistry: registry,
	}, cleanup, nil
}

// newServiceRegistry builds a standalone registry seeded with the process
// and Go runtime collectors.
func newServiceRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
	return registry
}
