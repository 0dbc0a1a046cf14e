// Package instrumentation provides OpenTelemetry metrics, tracing, and audit
// records for action invocations and upstream document-service calls.
//
// A Provider owns the meter and tracer providers and selects exporters from
// configuration (prometheus, otlp, or stdout). Metrics and audit logging are
// both optional; a disabled provider yields no-op recorders so call sites
// need no conditionals.
package instrumentation
