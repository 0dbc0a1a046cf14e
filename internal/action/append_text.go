package action

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/teemow/docsbridge/internal/docs"
)

// AppendTextRequest adds text to an existing document, optionally styled.
type AppendTextRequest struct {
	DocumentID   string            `json:"document_id"`
	TextToAppend string            `json:"text_to_append"`
	TextStyle    *TextStyleRequest `json:"text_style,omitempty"`
}

// TextStyleRequest holds the optional style attributes. Nil pointers mean
// "leave unchanged"; each non-nil attribute becomes one updateTextStyle
// sub-request.
type TextStyleRequest struct {
	Bold      *bool    `json:"bold,omitempty"`
	Italic    *bool    `json:"italic,omitempty"`
	Underline *bool    `json:"underline,omitempty"`
	FontSize  *float64 `json:"font_size,omitempty"`
}

// Validate implements the validation rules for the request.
func (r AppendTextRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DocumentID, validation.Required),
		validation.Field(&r.TextToAppend, validation.Required),
	)
}

// AppendTextToDocument inserts text into an existing document. Despite the
// name, the insert location is index 1, so the text lands at the start of
// the body; the service contract is preserved as-is.
type AppendTextToDocument struct{}

// Name implements Action.
func (a *AppendTextToDocument) Name() string { return "append_text_to_document" }

// DisplayName implements Action.
func (a *AppendTextToDocument) DisplayName() string { return "Append Text to Document" }

// RequestSchema implements Action.
func (a *AppendTextToDocument) RequestSchema() Schema {
	return Schema{
		Name: "AppendTextToDocumentRequest",
		Fields: []Field{
			{
				Name: "document_id", Type: "string", Required: true,
				Description: "The unique identifier of the document to which the text will be added. This ID can be extracted from the document's URL.",
				Example:     "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
			},
			{
				Name: "text_to_append", Type: "string", Required: true,
				Description: "The plain text to add to the document.",
				Example:     "This is some text that will be appended.",
			},
			{
				Name: "text_style", Type: "object",
				Description: "Optional style for the inserted text: bold, italic, underline, font_size (points).",
			},
		},
	}
}

// ResponseSchema implements Action.
func (a *AppendTextToDocument) ResponseSchema() Schema {
	return Schema{
		Name: "AppendTextToDocumentResponse",
		Fields: []Field{
			{Name: "success", Type: "boolean", Description: "Whether the text was successfully added", Required: true},
		},
	}
}

// ParseRequest implements Action.
func (a *AppendTextToDocument) ParseRequest(args map[string]any) (any, error) {
	var req AppendTextRequest
	if err := decodeArgs(args, &req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// Execute implements Action. The style range is computed from the
// out-of-band text length carried by the ExecContext, not from the request.
func (a *AppendTextToDocument) Execute(ctx context.Context, reqAny any, auth docs.AuthContext, exec ExecContext) Envelope {
	return guard(func() Envelope {
		req, ok := reqAny.(*AppendTextRequest)
		if !ok {
			return wrongRequestType(a, reqAny)
		}

		body := &docs.BatchUpdateBody{
			Requests: []docs.UpdateRequest{
				{InsertText: &docs.InsertTextRequest{
					Location: docs.Location{Index: 1},
					Text:     req.TextToAppend,
				}},
			},
		}
		if req.TextStyle != nil {
			body.Requests = append(body.Requests, styleRequests(req.TextStyle, exec.TextLength)...)
		}

		resp, err := exec.Client.BatchUpdate(ctx, auth, req.DocumentID, body)
		if err != nil {
			return Failed(KindNetwork, err)
		}
		if !resp.OK() {
			return UpstreamFailed(resp)
		}
		return Succeeded(req.DocumentID, resp.Body)
	})
}

// styleRequests builds one updateTextStyle sub-request per set attribute,
// each ranging over [1, textLength+1).
func styleRequests(style *TextStyleRequest, textLength int) []docs.UpdateRequest {
	styledRange := docs.Range{StartIndex: 1, EndIndex: textLength + 1}
	var requests []docs.UpdateRequest

	if style.Bold != nil {
		requests = append(requests, docs.UpdateRequest{
			UpdateTextStyle: &docs.UpdateTextStyleRequest{
				Range:     styledRange,
				TextStyle: docs.TextStyle{Bold: style.Bold},
				Fields:    "bold",
			},
		})
	}
	if style.Italic != nil {
		requests = append(requests, docs.UpdateRequest{
			UpdateTextStyle: &docs.UpdateTextStyleRequest{
				Range:     styledRange,
				TextStyle: docs.TextStyle{Italic: style.Italic},
				Fields:    "italic",
			},
		})
	}
	if style.Underline != nil {
		requests = append(requests, docs.UpdateRequest{
			UpdateTextStyle: &docs.UpdateTextStyleRequest{
				Range:     styledRange,
				TextStyle: docs.TextStyle{Underline: style.Underline},
				Fields:    "underline",
			},
		})
	}
	if style.FontSize != nil {
		requests = append(requests, docs.UpdateRequest{
			UpdateTextStyle: &docs.UpdateTextStyleRequest{
				Range: styledRange,
				TextStyle: docs.TextStyle{
					FontSize: &docs.FontSize{Magnitude: *style.FontSize, Unit: "PT"},
				},
				Fields: "fontSize",
			},
		})
	}

	return requests
}
