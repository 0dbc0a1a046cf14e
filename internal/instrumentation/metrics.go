package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrAction    = "action"
	attrOperation = "operation"
	attrStatus    = "status"
	attrAccount   = "account"
)

// Status values recorded on metrics.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics records observability metrics for action invocations and upstream
// document-service operations. The zero value is a no-op recorder.
type Metrics struct {
	actionInvocationsTotal metric.Int64Counter
	actionDuration         metric.Float64Histogram

	upstreamOperationsTotal metric.Int64Counter
	upstreamDuration        metric.Float64Histogram

	// detailedLabels controls whether high-cardinality labels are included
	detailedLabels bool
}

// NewMetrics creates a Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{detailedLabels: detailedLabels}

	var err error

	m.actionInvocationsTotal, err = meter.Int64Counter(
		"action_invocations_total",
		metric.WithDescription("Total number of action invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create action_invocations_total counter: %w", err)
	}

	m.actionDuration, err = meter.Float64Histogram(
		"action_duration_seconds",
		metric.WithDescription("Action invocation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create action_duration_seconds histogram: %w", err)
	}

	m.upstreamOperationsTotal, err = meter.Int64Counter(
		"docs_api_operations_total",
		metric.WithDescription("Total number of document-service API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create docs_api_operations_total counter: %w", err)
	}

	m.upstreamDuration, err = meter.Float64Histogram(
		"docs_api_operation_duration_seconds",
		metric.WithDescription("Document-service API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create docs_api_operation_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordActionInvocation records one action invocation with its outcome.
func (m *Metrics) RecordActionInvocation(ctx context.Context, action, account, status string, duration time.Duration) {
	if m.actionInvocationsTotal == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrAction, action),
		attribute.String(attrStatus, status),
	}
	if m.detailedLabels && account != "" && account != "default" {
		attrs = append(attrs, attribute.String(attrAccount, account))
	}

	set := metric.WithAttributes(attrs...)
	m.actionInvocationsTotal.Add(ctx, 1, set)
	m.actionDuration.Record(ctx, duration.Seconds(), set)
}

// RecordUpstreamOperation records one document-service API call.
func (m *Metrics) RecordUpstreamOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m.upstreamOperationsTotal == nil {
		return
	}

	set := metric.WithAttributes(
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)
	m.upstreamOperationsTotal.Add(ctx, 1, set)
	m.upstreamDuration.Record(ctx, duration.Seconds(), set)
}
