// Package docs_tools exposes the document actions as MCP tools. Each action
// in the toolkit becomes one tool whose input schema mirrors the action's
// declared request schema, plus the out-of-band inputs (file content, text
// length) that the schemas do not model. Every tool returns the normalized
// result envelope as JSON.
package docs_tools
