// Package metrics provides a Prometheus exporter
// for serving metrics.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.uber.org/zap"
)

const (
	serviceName = "dgram"

	// MetricsPath is the HTTP path metrics are served on
	MetricsPath = "/metrics"

	readHeaderTimeout = 5 * time.Second
)

// Prometheus is an OpenTelemetry Prometheus exporter served over HTTP.
type Prometheus struct {
	logger    *zap.Logger
	address   string
	resources *resource.Resource
	registry  *promclient.Registry
	provider  *sdkmetric.MeterProvider
	listener  net.Listener
	server    *http.Server
}

// NewPrometheus creates a new Prometheus provider that will listen on address.
func NewPrometheus(logger *zap.Logger, address string) (*Prometheus, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if address == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}

	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("get hostname: %w", err)
	}

	r := []attribute.KeyValue{
		semconv.ServiceNameKey.String(serviceName),
		semconv.HostNameKey.String(hostname),
	}

	return &Prometheus{
		logger:    logger.Named("metrics"),
		address:   address,
		resources: resource.NewWithAttributes(semconv.SchemaURL, r...),
		registry:  promclient.NewRegistry(),
	}, nil
}

// Start registers the global meter provider and starts serving metrics.
// Instruments created after Start report through this exporter.
func (p *Prometheus) Start(_ context.Context) error {
	exporter, err := prometheus.New(
		prometheus.WithNamespace(serviceName),
		prometheus.WithRegisterer(p.registry),
	)
	if err != nil {
		return fmt.Errorf("create prometheus exporter: %w", err)
	}

	listener, err := net.Listen("tcp", p.address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", p.address, err)
	}
	p.listener = listener

	p.provider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(p.resources),
	)
	otel.SetMeterProvider(p.provider)

	mux := http.NewServeMux()
	mux.Handle(MetricsPath, promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{}))
	p.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	p.logger.Info("Serving metrics", zap.String("address", listener.Addr().String()), zap.String("path", MetricsPath))

	go func() {
		if err := p.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.logger.Error("Metrics server failed", zap.Error(err))
		}
	}()

	return nil
}

// Addr returns the address the metrics server listens on, or nil before Start.
func (p *Prometheus) Addr() net.Addr {
	if p.listener == nil {
		return nil
	}
	return p.listener.Addr()
}

// Shutdown stops the HTTP server and the meter provider
func (p *Prometheus) Shutdown(ctx context.Context) error {
	var errs []error
	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown metrics server: %w", err))
		}
	}
	if p.provider != nil {
		if err := p.provider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown meter provider: %w", err))
		}
	}
	return errors.Join(errs...)
}
