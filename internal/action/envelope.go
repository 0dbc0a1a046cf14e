package action

import (
	"encoding/json"
	"fmt"

	"github.com/teemow/docsbridge/internal/docs"
)

// ErrorKind classifies an action failure. Each failure site maps to exactly
// one kind so callers can branch on failure class without parsing messages.
type ErrorKind string

const (
	// KindValidation: the request was malformed or missing required fields.
	KindValidation ErrorKind = "validation"
	// KindUpstream4xx: the document service rejected the call (status 400-499).
	KindUpstream4xx ErrorKind = "upstream_4xx"
	// KindUpstream5xx: the document service failed (status 500+).
	KindUpstream5xx ErrorKind = "upstream_5xx"
	// KindNetwork: the call never completed (DNS, connect, timeout).
	KindNetwork ErrorKind = "network"
	// KindEncoding: request or response content could not be encoded/decoded.
	KindEncoding ErrorKind = "encoding"
	// KindInternal: an unexpected fault inside the action body.
	KindInternal ErrorKind = "internal"
)

// Envelope is the normalized result of every action execution. It is the
// single wire contract between actions and the host runtime; no action
// returns a different shape.
type Envelope struct {
	ExecutionDetails ExecutionDetails `json:"execution_details"`
	ResponseData     ResponseData     `json:"response_data"`
}

// ExecutionDetails records whether the action's side effect took place.
type ExecutionDetails struct {
	Executed bool `json:"executed"`
}

// ResponseData carries the action outcome. Raw holds the upstream response
// body verbatim (success payload or failure body); NewDocument carries the
// copy response for the template action.
type ResponseData struct {
	Success     bool            `json:"success"`
	DocumentID  string          `json:"document_id,omitempty"`
	ErrorKind   ErrorKind       `json:"error_kind,omitempty"`
	Error       string          `json:"error,omitempty"`
	Raw         json.RawMessage `json:"raw,omitempty"`
	NewDocument json.RawMessage `json:"new_document,omitempty"`
}

// Succeeded builds a success envelope carrying the upstream body and, when
// known, the affected document id.
func Succeeded(documentID string, raw json.RawMessage) Envelope {
	return Envelope{
		ExecutionDetails: ExecutionDetails{Executed: true},
		ResponseData: ResponseData{
			Success:    true,
			DocumentID: documentID,
			Raw:        raw,
		},
	}
}

// Failed builds a failure envelope for a fault that prevented or invalidated
// the side effect.
func Failed(kind ErrorKind, err error) Envelope {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Envelope{
		ExecutionDetails: ExecutionDetails{Executed: false},
		ResponseData: ResponseData{
			Success:   false,
			ErrorKind: kind,
			Error:     msg,
		},
	}
}

// UpstreamFailed builds a failure envelope for a non-2xx upstream response,
// attaching the raw body so callers can inspect the service's own error
// payload.
func UpstreamFailed(resp *docs.Response) Envelope {
	return Envelope{
		ExecutionDetails: ExecutionDetails{Executed: false},
		ResponseData: ResponseData{
			Success:   false,
			ErrorKind: KindForStatus(resp.StatusCode),
			Error:     fmt.Sprintf("document service returned status %d", resp.StatusCode),
			Raw:       resp.Body,
		},
	}
}

// KindForStatus maps an HTTP status code to an ErrorKind.
func KindForStatus(status int) ErrorKind {
	switch {
	case status >= 400 && status < 500:
		return KindUpstream4xx
	case status >= 500:
		return KindUpstream5xx
	default:
		return KindInternal
	}
}

// guard runs an action body and converts any panic into an internal-fault
// envelope. Faults never cross the action boundary as panics or errors.
func guard(fn func() Envelope) (env Envelope) {
	defer func() {
		if r := recover(); r != nil {
			env = Failed(KindInternal, fmt.Errorf("action panicked: %v", r))
		}
	}()
	return fn()
}
