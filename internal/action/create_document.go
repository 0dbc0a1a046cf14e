package action

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/teemow/docsbridge/internal/docs"
	"github.com/teemow/docsbridge/internal/logging"
)

// CreateDocumentRequest creates a new document with an optional title and
// optional initial text.
type CreateDocumentRequest struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text,omitempty"`
}

// CreateDocument creates a new document and, when initial text is supplied,
// inserts it with a follow-up call.
type CreateDocument struct{}

// Name implements Action.
func (a *CreateDocument) Name() string { return "create_document" }

// DisplayName implements Action.
func (a *CreateDocument) DisplayName() string { return "Create Document" }

// RequestSchema implements Action.
func (a *CreateDocument) RequestSchema() Schema {
	return Schema{
		Name: "CreateDocumentRequest",
		Fields: []Field{
			{Name: "title", Type: "string", Description: "Title of the new document"},
			{Name: "text", Type: "string", Description: "Initial text to insert into the document"},
		},
	}
}

// ResponseSchema implements Action.
func (a *CreateDocument) ResponseSchema() Schema {
	return Schema{
		Name: "CreateDocumentResponse",
		Fields: []Field{
			{Name: "success", Type: "boolean", Description: "Whether the document was created", Required: true},
			{Name: "document_id", Type: "string", Description: "ID of the newly created document"},
		},
	}
}

// ParseRequest implements Action. Both fields are optional, so construction
// only fails on malformed input.
func (a *CreateDocument) ParseRequest(args map[string]any) (any, error) {
	var req CreateDocumentRequest
	if err := decodeArgs(args, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// Execute implements Action.
func (a *CreateDocument) Execute(ctx context.Context, reqAny any, auth docs.AuthContext, exec ExecContext) Envelope {
	return guard(func() Envelope {
		req, ok := reqAny.(*CreateDocumentRequest)
		if !ok {
			return wrongRequestType(a, reqAny)
		}

		resp, err := exec.Client.CreateDocument(ctx, auth, &docs.CreateDocumentBody{Title: req.Title})
		if err != nil {
			return Failed(KindNetwork, err)
		}
		if !resp.OK() {
			return UpstreamFailed(resp)
		}

		var doc docs.Document
		if err := json.Unmarshal(resp.Body, &doc); err != nil {
			return Failed(KindEncoding, fmt.Errorf("failed to decode create response: %w", err))
		}
		documentID := doc.ID()

		// Without initial text there is nothing left to do; the created
		// document's id is the result.
		if req.Text == "" {
			return Succeeded(documentID, resp.Body)
		}

		// The insert call posts a document body against the batchUpdate
		// endpoint, mirroring what the service accepts for this operation.
		update, err := exec.Client.BatchUpdate(ctx, auth, documentID, &docs.CreateDocumentBody{
			Title: req.Title,
			Body:  docs.TextBody(req.Text),
		})
		if err != nil {
			return Failed(KindNetwork, err)
		}
		if !update.OK() {
			exec.logger().Warn("initial text insert failed",
				logging.Action(a.Name()),
				logging.Document(documentID),
			)
			return UpstreamFailed(update)
		}

		return Succeeded(documentID, update.Body)
	})
}
