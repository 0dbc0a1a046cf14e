package instrumentation

import "os"

// Exporter selects a metrics or traces exporter backend.
type Exporter string

const (
	// ExporterPrometheus exposes metrics for scraping via the metrics server.
	ExporterPrometheus Exporter = "prometheus"
	// ExporterOTLP pushes to an OTLP/HTTP collector endpoint.
	ExporterOTLP Exporter = "otlp"
	// ExporterStdout writes to standard output, for development.
	ExporterStdout Exporter = "stdout"
	// ExporterNone disables the signal.
	ExporterNone Exporter = "none"
)

// Config holds instrumentation settings.
type Config struct {
	// Enabled turns instrumentation on. When false, NewProvider returns a
	// no-op provider.
	Enabled bool

	// ServiceName identifies this service in exported telemetry.
	ServiceName string

	// ServiceVersion is the build version.
	ServiceVersion string

	// ServiceInstanceID distinguishes replicas; defaults to the hostname.
	ServiceInstanceID string

	// MetricsExporter selects the metrics backend.
	MetricsExporter Exporter

	// TracesExporter selects the traces backend.
	TracesExporter Exporter

	// OTLPEndpoint is the collector endpoint for the otlp exporters.
	OTLPEndpoint string

	// OTLPInsecure disables TLS for the OTLP exporters.
	OTLPInsecure bool

	// TraceSamplingRate is the ratio of traces to sample, in [0, 1].
	TraceSamplingRate float64

	// DetailedLabels includes higher-cardinality attributes on metrics.
	DetailedLabels bool
}

// DefaultConfig returns the standard configuration: prometheus metrics, no
// traces, with the OTLP endpoint picked up from the conventional environment
// variable when present.
func DefaultConfig() Config {
	cfg := Config{
		Enabled:         true,
		ServiceName:     "docsbridge",
		ServiceVersion:  "dev",
		MetricsExporter: ExporterPrometheus,
		TracesExporter:  ExporterNone,

		TraceSamplingRate: 0.1,
	}

	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		cfg.OTLPEndpoint = endpoint
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true" {
		cfg.OTLPInsecure = true
	}

	return cfg
}
