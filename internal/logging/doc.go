// Package logging provides structured logging helpers built on log/slog.
//
// It defines the canonical attribute keys used across the codebase so that
// action invocations, upstream calls, and server lifecycle events log with a
// consistent vocabulary, plus a small Logger interface for code that should
// not depend on slog directly.
package logging
