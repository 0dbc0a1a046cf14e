// Package common provides shared helpers for MCP tool handlers: account
// resolution from request arguments and instrumentation wrappers that record
// metrics and audit logs around each invocation.
package common
