package docs

import "encoding/json"

// AuthContext carries the caller-supplied authorization headers and the API
// base URL for a single invocation. It is never persisted.
type AuthContext struct {
	// Headers are sent verbatim on every request (e.g. "Authorization").
	Headers map[string]string `json:"headers"`

	// BaseURL is the API host to target. When empty, ProductionBaseURL is used.
	BaseURL string `json:"base_url"`
}

// Response is the outcome of a single upstream call. StatusCode carries the
// HTTP status; Body is the raw response payload, valid for any status.
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// OK reports whether the upstream call returned a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Document is the subset of the document resource the actions care about.
// The service is inconsistent about which identifier field it populates:
// document creation returns "documentId" while upload and title queries
// return "id", so both are decoded and ID() picks whichever is set.
type Document struct {
	DocumentID string `json:"documentId,omitempty"`
	AltID      string `json:"id,omitempty"`
	Title      string `json:"title,omitempty"`
}

// ID returns the document identifier regardless of which field the service
// populated.
func (d *Document) ID() string {
	if d.DocumentID != "" {
		return d.DocumentID
	}
	return d.AltID
}

// DocumentList is the payload of a title query.
type DocumentList struct {
	Documents []Document `json:"documents"`
}

// CreateDocumentBody is the body for a plain document creation.
type CreateDocumentBody struct {
	Title string        `json:"title"`
	Body  *DocumentBody `json:"body,omitempty"`
}

// DocumentBody holds the structural content of a document.
type DocumentBody struct {
	Content []StructuralElement `json:"content"`
}

// StructuralElement is one block of document content.
type StructuralElement struct {
	Paragraph *Paragraph `json:"paragraph,omitempty"`
}

// Paragraph is a run of paragraph elements.
type Paragraph struct {
	Elements []ParagraphElement `json:"elements"`
}

// ParagraphElement wraps a single text run.
type ParagraphElement struct {
	TextRun *TextRun `json:"textRun,omitempty"`
}

// TextRun is a contiguous run of text.
type TextRun struct {
	Content string `json:"content"`
}

// TextBody builds a document body containing a single plain text run.
func TextBody(text string) *DocumentBody {
	return &DocumentBody{
		Content: []StructuralElement{
			{Paragraph: &Paragraph{
				Elements: []ParagraphElement{
					{TextRun: &TextRun{Content: text}},
				},
			}},
		},
	}
}

// BatchUpdateBody bundles mutation sub-requests into a single call. The
// service applies them in order but gives no transactional guarantee.
type BatchUpdateBody struct {
	Requests []UpdateRequest `json:"requests"`
}

// UpdateRequest is one batchUpdate sub-request. Exactly one field is set.
type UpdateRequest struct {
	InsertText      *InsertTextRequest      `json:"insertText,omitempty"`
	UpdateTextStyle *UpdateTextStyleRequest `json:"updateTextStyle,omitempty"`
	ReplaceAllText  *ReplaceAllTextRequest  `json:"replaceAllText,omitempty"`
}

// InsertTextRequest inserts text at a fixed location.
type InsertTextRequest struct {
	Location Location `json:"location"`
	Text     string   `json:"text"`
}

// Location addresses an index within the document body.
type Location struct {
	Index int `json:"index"`
}

// UpdateTextStyleRequest applies a style over a half-open index range.
type UpdateTextStyleRequest struct {
	Range     Range     `json:"range"`
	TextStyle TextStyle `json:"textStyle"`
	Fields    string    `json:"fields"`
}

// Range is a half-open [StartIndex, EndIndex) interval.
type Range struct {
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
}

// TextStyle holds the styleable attributes the append action supports.
type TextStyle struct {
	Bold      *bool     `json:"bold,omitempty"`
	Italic    *bool     `json:"italic,omitempty"`
	Underline *bool     `json:"underline,omitempty"`
	FontSize  *FontSize `json:"fontSize,omitempty"`
}

// FontSize is a dimensioned font size.
type FontSize struct {
	Magnitude float64 `json:"magnitude"`
	Unit      string  `json:"unit"`
}

// ReplaceAllTextRequest replaces every occurrence of a substring.
type ReplaceAllTextRequest struct {
	ContainsText SubstringMatch `json:"containsText"`
	ReplaceText  string         `json:"replaceText"`
}

// SubstringMatch is the match criteria for a replaceAllText sub-request.
type SubstringMatch struct {
	Text      string `json:"text"`
	MatchCase bool   `json:"matchCase"`
}

// UploadBody is the body for the text upload endpoint. The service accepts
// UTF-8 text only; there is no multipart or binary-safe variant.
type UploadBody struct {
	Content  string `json:"content"`
	FileName string `json:"fileName"`
}
