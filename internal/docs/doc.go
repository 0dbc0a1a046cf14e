// Package docs provides a thin HTTP client for the document-service REST API.
//
// The client issues single, synchronous requests against a caller-supplied
// base URL with caller-supplied headers. Non-2xx responses are not treated as
// Go errors; they are returned to the caller together with the raw response
// body so that action-level policy can decide what a failure means. Transport
// and encoding problems are returned as errors.
//
// No state is retained between calls and no retries are performed. A single
// failed request is terminal for that invocation.
package docs
