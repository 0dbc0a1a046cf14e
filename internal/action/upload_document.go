package action

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/teemow/docsbridge/internal/docs"
)

// UploadDocumentRequest uploads file content as a new document.
type UploadDocumentRequest struct {
	FileName string `json:"file_name,omitempty"`
}

// UploadDocument reads the supplied file content and uploads it as a new
// document. The upload endpoint takes UTF-8 text in a JSON body; there is no
// multipart or binary-safe variant, so non-UTF-8 content fails before any
// request is issued.
type UploadDocument struct{}

// Name implements Action.
func (a *UploadDocument) Name() string { return "upload_document" }

// DisplayName implements Action.
func (a *UploadDocument) DisplayName() string { return "Upload Document" }

// RequestSchema implements Action.
func (a *UploadDocument) RequestSchema() Schema {
	return Schema{
		Name: "UploadDocumentRequest",
		Fields: []Field{
			{Name: "file_name", Type: "string",
				Description: "Name to assign to the uploaded file"},
		},
	}
}

// ResponseSchema implements Action.
func (a *UploadDocument) ResponseSchema() Schema {
	return Schema{
		Name: "UploadDocumentResponse",
		Fields: []Field{
			{Name: "success", Type: "boolean", Description: "Whether the document was successfully uploaded", Required: true},
			{Name: "document_id", Type: "string", Description: "ID of the uploaded document"},
		},
	}
}

// ParseRequest implements Action. The file content itself arrives through
// the ExecContext, not the declared request.
func (a *UploadDocument) ParseRequest(args map[string]any) (any, error) {
	var req UploadDocumentRequest
	if err := decodeArgs(args, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// Execute implements Action.
func (a *UploadDocument) Execute(ctx context.Context, reqAny any, auth docs.AuthContext, exec ExecContext) Envelope {
	return guard(func() Envelope {
		req, ok := reqAny.(*UploadDocumentRequest)
		if !ok {
			return wrongRequestType(a, reqAny)
		}
		if exec.File == nil {
			return Failed(KindValidation, fmt.Errorf("file content is required"))
		}

		content, err := io.ReadAll(exec.File)
		if err != nil {
			return Failed(KindInternal, fmt.Errorf("failed to read file content: %w", err))
		}
		if !utf8.Valid(content) {
			return Failed(KindEncoding, fmt.Errorf("file content is not valid UTF-8 text"))
		}

		resp, err := exec.Client.UploadDocument(ctx, auth, &docs.UploadBody{
			Content:  string(content),
			FileName: req.FileName,
		})
		if err != nil {
			return Failed(KindNetwork, err)
		}
		if !resp.OK() {
			return UpstreamFailed(resp)
		}

		var doc docs.Document
		if err := json.Unmarshal(resp.Body, &doc); err != nil {
			return Failed(KindEncoding, fmt.Errorf("failed to decode upload response: %w", err))
		}
		return Succeeded(doc.ID(), resp.Body)
	})
}
