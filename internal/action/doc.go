// Package action defines the uniform action contract for the document
// toolkit: typed request schemas, a single normalized result envelope, and
// the six concrete document operations.
//
// Every action follows the same lifecycle: the host parses untyped arguments
// into a validated request (ParseRequest, which performs no I/O), then calls
// Execute with an authorization context and an ExecContext carrying auxiliary
// input the declared schema does not model. Execute never returns a Go error
// and never panics across the boundary; every outcome, including internal
// faults, is expressed as an Envelope.
package action
