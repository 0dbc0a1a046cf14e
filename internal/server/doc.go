// Package server holds the runtime state shared by the MCP transports: the
// document-service client, the credential provider, instrumentation, and the
// health and metrics HTTP endpoints.
package server
