package action

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/teemow/docsbridge/internal/docs"
)

// Action is a single named, independently invocable document operation with
// a typed request/response contract.
type Action interface {
	// Name is the stable snake_case identifier used for lookup and tool
	// registration, e.g. "create_document".
	Name() string

	// DisplayName is the human-readable name for UI listings.
	DisplayName() string

	// RequestSchema declares the request field shapes and validation rules.
	RequestSchema() Schema

	// ResponseSchema declares the intended shape of a successful result.
	ResponseSchema() Schema

	// ParseRequest constructs the typed request from untyped arguments and
	// validates it. It performs no I/O; a returned error means no network
	// call will be attempted for this invocation.
	ParseRequest(args map[string]any) (any, error)

	// Execute performs the integration call(s) and returns the normalized
	// envelope. req must be a value produced by ParseRequest. Execute never
	// returns an error and never panics; every failure is an envelope.
	Execute(ctx context.Context, req any, auth docs.AuthContext, exec ExecContext) Envelope
}

// ExecContext carries the auxiliary execution input the declared request
// schemas do not model, making the full action input an explicit composite
// of declared request plus execution context.
type ExecContext struct {
	// Client is the document-service client to call through.
	Client *docs.Client

	// TextLength is the length of previously inserted text, used only for
	// style range computation by the append action.
	TextLength int

	// File is the uploaded file content consumed by the upload action.
	File io.Reader

	// Logger receives per-execution log records. Nil means slog.Default().
	Logger *slog.Logger
}

func (e ExecContext) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// decodeArgs round-trips untyped arguments through JSON into the typed
// request struct, so nested objects (text_style, replacements) decode the
// same way they would off the wire.
func decodeArgs(args map[string]any, into any) error {
	payload, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if err := json.Unmarshal(payload, into); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// wrongRequestType is the envelope for an Execute called with a request value
// that did not come from the action's own ParseRequest.
func wrongRequestType(a Action, req any) Envelope {
	return Failed(KindValidation, fmt.Errorf("%s: unexpected request type %T", a.Name(), req))
}
