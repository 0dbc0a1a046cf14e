package instrumentation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// ActionInvocation captures one action invocation for audit logging. It is
// the durable record of which action ran, for which account, and how it
// ended.
type ActionInvocation struct {
	// ID uniquely identifies this invocation across log streams.
	ID string

	// Action is the invoked action's name.
	Action string

	// Account is the account context the invocation ran under.
	Account string

	// Execution details
	StartTime time.Time
	Duration  time.Duration
	Success   bool
	ErrorKind string
	Error     string

	// Tracing context
	TraceID string
	SpanID  string
}

// NewActionInvocation starts a new invocation record.
func NewActionInvocation(action string) *ActionInvocation {
	return &ActionInvocation{
		ID:        uuid.NewString(),
		Action:    action,
		StartTime: time.Now(),
	}
}

// WithAccount attaches the account context.
func (ai *ActionInvocation) WithAccount(account string) *ActionInvocation {
	ai.Account = account
	return ai
}

// WithSpanContext captures the active trace and span ids, when a span is
// recording on the context.
func (ai *ActionInvocation) WithSpanContext(ctx context.Context) *ActionInvocation {
	span := trace.SpanContextFromContext(ctx)
	if span.IsValid() {
		ai.TraceID = span.TraceID().String()
		ai.SpanID = span.SpanID().String()
	}
	return ai
}

// Complete finalizes the record with the given outcome.
func (ai *ActionInvocation) Complete(success bool, errorKind, errorMsg string) {
	ai.Duration = time.Since(ai.StartTime)
	ai.Success = success
	ai.ErrorKind = errorKind
	ai.Error = errorMsg
}

// Status returns "success" or "error" based on the Success field.
func (ai *ActionInvocation) Status() string {
	if ai.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns slog attributes for structured audit logging.
func (ai *ActionInvocation) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("invocation_id", ai.ID),
		slog.String("action", ai.Action),
		slog.Duration("duration", ai.Duration),
		slog.Bool("success", ai.Success),
	}

	if ai.Account != "" && ai.Account != "default" {
		attrs = append(attrs, slog.String("account", ai.Account))
	}
	if ai.ErrorKind != "" {
		attrs = append(attrs, slog.String("error_kind", ai.ErrorKind))
	}
	if ai.Error != "" {
		attrs = append(attrs, slog.String("error", ai.Error))
	}
	if ai.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ai.TraceID), slog.String("span_id", ai.SpanID))
	}

	return attrs
}

// AuditLogger writes action invocation records to a structured log stream.
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates an audit logger. A nil logger means slog.Default().
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{logger: logger}
}

// LogActionInvocation writes one completed invocation record.
func (al *AuditLogger) LogActionInvocation(ai *ActionInvocation) {
	al.logger.LogAttrs(context.Background(), slog.LevelInfo, "action invocation", ai.LogAttrs()...)
}
