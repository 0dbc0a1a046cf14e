package action

import (
	"context"
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/teemow/docsbridge/internal/docs"
	"github.com/teemow/docsbridge/internal/logging"
)

// FindOrCreateRequest looks up a document by title, creating it when absent.
type FindOrCreateRequest struct {
	DocumentTitle string `json:"document_title"`
}

// Validate implements the validation rules for the request.
func (r FindOrCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DocumentTitle, validation.Required),
	)
}

// FindOrCreateDocument queries documents by title and returns the first
// match's id, creating a fresh document when the query yields none.
//
// The lookup and create helpers both collapse "no result" and "request
// failed" into an empty id, so a transient query failure leads to a create
// attempt rather than an error. That is the service's established contract;
// callers that need to distinguish the cases must inspect their documents
// out of band.
type FindOrCreateDocument struct{}

// Name implements Action.
func (a *FindOrCreateDocument) Name() string { return "find_or_create_document" }

// DisplayName implements Action.
func (a *FindOrCreateDocument) DisplayName() string { return "Find or Create Document" }

// RequestSchema implements Action.
func (a *FindOrCreateDocument) RequestSchema() Schema {
	return Schema{
		Name: "FindOrCreateDocumentRequest",
		Fields: []Field{
			{Name: "document_title", Type: "string", Required: true,
				Description: "Title of the document to find or create"},
		},
	}
}

// ResponseSchema implements Action.
func (a *FindOrCreateDocument) ResponseSchema() Schema {
	return Schema{
		Name: "FindOrCreateDocumentResponse",
		Fields: []Field{
			{Name: "success", Type: "boolean", Description: "Whether the operation was successful", Required: true},
			{Name: "document_id", Type: "string", Description: "ID of the found or created document"},
		},
	}
}

// ParseRequest implements Action.
func (a *FindOrCreateDocument) ParseRequest(args map[string]any) (any, error) {
	var req FindOrCreateRequest
	if err := decodeArgs(args, &req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// Execute implements Action.
func (a *FindOrCreateDocument) Execute(ctx context.Context, reqAny any, auth docs.AuthContext, exec ExecContext) Envelope {
	return guard(func() Envelope {
		req, ok := reqAny.(*FindOrCreateRequest)
		if !ok {
			return wrongRequestType(a, reqAny)
		}

		if id := a.findDocument(ctx, exec, auth, req.DocumentTitle); id != "" {
			return Succeeded(id, nil)
		}

		if id := a.createDocument(ctx, exec, auth, req.DocumentTitle); id != "" {
			return Succeeded(id, nil)
		}

		return Failed(KindInternal, fmt.Errorf("document %q could not be found or created", req.DocumentTitle))
	})
}

// findDocument returns the first matching document id, or "" when the query
// yields nothing or fails.
func (a *FindOrCreateDocument) findDocument(ctx context.Context, exec ExecContext, auth docs.AuthContext, title string) string {
	resp, err := exec.Client.FindByTitle(ctx, auth, title)
	if err != nil || !resp.OK() {
		exec.logger().Debug("document lookup yielded no result",
			logging.Action(a.Name()),
			logging.Err(err),
		)
		return ""
	}

	var list docs.DocumentList
	if err := json.Unmarshal(resp.Body, &list); err != nil {
		return ""
	}
	if len(list.Documents) == 0 {
		return ""
	}
	return list.Documents[0].ID()
}

// createDocument creates a document with the given title and returns its id,
// or "" when the call fails.
func (a *FindOrCreateDocument) createDocument(ctx context.Context, exec ExecContext, auth docs.AuthContext, title string) string {
	resp, err := exec.Client.CreateDocument(ctx, auth, &docs.CreateDocumentBody{Title: title})
	if err != nil || !resp.OK() {
		exec.logger().Debug("document create yielded no result",
			logging.Action(a.Name()),
			logging.Err(err),
		)
		return ""
	}

	var doc docs.Document
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return ""
	}
	return doc.ID()
}
