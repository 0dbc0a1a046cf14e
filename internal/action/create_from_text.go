package action

import (
	"context"
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/teemow/docsbridge/internal/docs"
)

// CreateFromTextRequest creates a new document from content in one call.
type CreateFromTextRequest struct {
	DocumentContent string `json:"document_content"`
	Title           string `json:"title"`
}

// Validate implements the validation rules for the request.
func (r CreateFromTextRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DocumentContent, validation.Required),
		validation.Field(&r.Title, validation.Required),
	)
}

// CreateDocumentFromText creates a document whose body is the supplied
// content as a single plain text run. The service advertises limited HTML
// support for this content; nothing is transformed at this layer.
type CreateDocumentFromText struct{}

// Name implements Action.
func (a *CreateDocumentFromText) Name() string { return "create_document_from_text" }

// DisplayName implements Action.
func (a *CreateDocumentFromText) DisplayName() string { return "Create Document from Text" }

// RequestSchema implements Action.
func (a *CreateDocumentFromText) RequestSchema() Schema {
	return Schema{
		Name: "CreateDocumentFromTextRequest",
		Fields: []Field{
			{Name: "document_content", Type: "string", Required: true,
				Description: "Content of the document to create. Limited HTML is supported."},
			{Name: "title", Type: "string", Required: true,
				Description: "Title of the document"},
		},
	}
}

// ResponseSchema implements Action.
func (a *CreateDocumentFromText) ResponseSchema() Schema {
	return Schema{
		Name: "CreateDocumentFromTextResponse",
		Fields: []Field{
			{Name: "success", Type: "boolean", Description: "Whether the document creation was successful", Required: true},
			{Name: "document_id", Type: "string", Description: "ID of the created document"},
		},
	}
}

// ParseRequest implements Action.
func (a *CreateDocumentFromText) ParseRequest(args map[string]any) (any, error) {
	var req CreateFromTextRequest
	if err := decodeArgs(args, &req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// Execute implements Action.
func (a *CreateDocumentFromText) Execute(ctx context.Context, reqAny any, auth docs.AuthContext, exec ExecContext) Envelope {
	return guard(func() Envelope {
		req, ok := reqAny.(*CreateFromTextRequest)
		if !ok {
			return wrongRequestType(a, reqAny)
		}

		resp, err := exec.Client.CreateDocument(ctx, auth, &docs.CreateDocumentBody{
			Title: req.Title,
			Body:  docs.TextBody(req.DocumentContent),
		})
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
		return Succeeded(doc.ID(), resp.Body)
	})
}
