package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional OTLP exporter.
// It returns a Recorder, the Prometheus HTTP handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = "nba-database"
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

type otelInstruments struct {
	ctx              context.Context
	meter            metric.Meter
	requests         metric.Int64Counter
	requestLatencyMs metric.Float64Histogram
	queryExecutions  metric.Int64Counter
	queryErrors      metric.Int64Counter
	queryTruncations metric.Int64Counter
	queryLatencyMs   metric.Float64Histogram
	scrapeAttempts   metric.Int64Counter
	scrapeErrors     metric.Int64Counter
	scrapeLatencyMs  metric.Float64Histogram
	reloadCycles     metric.Int64Counter
	reloadErrors     metric.Int64Counter
	reloadLatencyMs  metric.Float64Histogram
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter("nba-database")
	ctx := context.Background()

	requests, err := meter.Int64Counter("http_requests_total")
	if err != nil {
		return nil, err
	}
	requestLatency, err := meter.Float64Histogram("http_request_duration_ms")
	if err != nil {
		return nil, err
	}

	queryExecutions, err := meter.Int64Counter("query_executions_total")
	if err != nil {
		return nil, err
	}
	queryErrors, err := meter.Int64Counter("query_errors_total")
	if err != nil {
		return nil, err
	}
	queryTruncations, err := meter.Int64Counter("query_truncations_total")
	if err != nil {
		return nil, err
	}
	queryLatency, err := meter.Float64Histogram("query_duration_ms")
	if err != nil {
		return nil, err
	}

	scrapeAttempts, err := meter.Int64Counter("scrape_attempts_total")
	if err != nil {
		return nil, err
	}
	scrapeErrors, err := meter.Int64Counter("scrape_errors_total")
	if err != nil {
		return nil, err
	}
	scrapeLatency, err := meter.Float64Histogram("scrape_duration_ms")
	if err != nil {
		return nil, err
	}

	reloadCycles, err := meter.Int64Counter("db_reload_cycles_total")
	if err != nil {
		return nil, err
	}
	reloadErrors, err := meter.Int64Counter("db_reload_errors_total")
	if err != nil {
		return nil, err
	}
	reloadLatency, err := meter.Float64Histogram("db_reload_duration_ms")
	if err != nil {
		return nil, err
	}

	return &otelInstruments{
		ctx:              ctx,
		meter:            meter,
		requests:         requests,
		requestLatencyMs: requestLatency,
		queryExecutions:  queryExecutions,
		queryErrors:      queryErrors,
		queryTruncations: queryTruncations,
		queryLatencyMs:   queryLatency,
		scrapeAttempts:   scrapeAttempts,
		scrapeErrors:     scrapeErrors,
		scrapeLatencyMs:  scrapeLatency,
		reloadCycles:     reloadCycles,
		reloadErrors:     reloadErrors,
		reloadLatencyMs:  reloadLatency,
	}, nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	}
	o.recordCounter(o.requests, 1, attrs...)
	o.recordHistogram(o.requestLatencyMs, float64(duration.Milliseconds()), attrs...)
}

func (o *otelInstruments) recordQuery(kind string, duration time.Duration, truncated bool, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrKind, kind)}
	o.recordCounter(o.queryExecutions, 1, attrs...)
	o.recordHistogram(o.queryLatencyMs, float64(duration.Milliseconds()), attrs...)
	if truncated {
		o.recordCounter(o.queryTruncations, 1, attrs...)
	}
	if err != nil {
		o.recordCounter(o.queryErrors, 1, attrs...)
	}
}

func (o *otelInstruments) recordScrapeAttempt(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.recordCounter(o.scrapeAttempts, 1)
	o.recordHistogram(o.scrapeLatencyMs, float64(duration.Milliseconds()))
	if err != nil {
		o.recordCounter(o.scrapeErrors, 1)
	}
}

func (o *otelInstruments) recordReload(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.recordCounter(o.reloadCycles, 1)
	o.recordHistogram(o.reloadLatencyMs, float64(duration.Milliseconds()))
	if err != nil {
		o.recordCounter(o.reloadErrors, 1)
	}
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
