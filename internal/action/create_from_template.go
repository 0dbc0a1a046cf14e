package action

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/teemow/docsbridge/internal/docs"
	"github.com/teemow/docsbridge/internal/logging"
)

// DefaultTemplateTitle is the title used when the caller supplies none.
const DefaultTemplateTitle = "New Document"

// CreateFromTemplateRequest copies a template document and replaces
// placeholder variables in the copy.
type CreateFromTemplateRequest struct {
	TemplateDocumentID string            `json:"template_document_id"`
	Replacements       map[string]string `json:"replacements"`
	NewDocumentTitle   string            `json:"new_document_title"`
}

// Validate implements the validation rules for the request. An empty
// replacements map is allowed; an absent one is not.
func (r CreateFromTemplateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TemplateDocumentID, validation.Required),
		validation.Field(&r.Replacements, validation.NotNil),
	)
}

// CreateDocumentFromTemplate copies a template document under a new title
// and applies all placeholder replacements in a single follow-up call.
type CreateDocumentFromTemplate struct{}

// Name implements Action.
func (a *CreateDocumentFromTemplate) Name() string { return "create_document_from_template" }

// DisplayName implements Action.
func (a *CreateDocumentFromTemplate) DisplayName() string { return "Create Document from Template" }

// RequestSchema implements Action.
func (a *CreateDocumentFromTemplate) RequestSchema() Schema {
	return Schema{
		Name: "CreateDocumentFromTemplateRequest",
		Fields: []Field{
			{Name: "template_document_id", Type: "string", Required: true,
				Description: "ID of the template document to create a new document from"},
			{Name: "replacements", Type: "mapping", Required: true,
				Description: "Mapping of placeholder variables to their replacements"},
			{Name: "new_document_title", Type: "string", Default: DefaultTemplateTitle,
				Description: "Title of the new document to be created"},
		},
	}
}

// ResponseSchema implements Action.
func (a *CreateDocumentFromTemplate) ResponseSchema() Schema {
	return Schema{
		Name: "CreateDocumentFromTemplateResponse",
		Fields: []Field{
			{Name: "success", Type: "boolean", Description: "Whether the new document creation was successful", Required: true},
			{Name: "new_document", Type: "object", Description: "The copy response for the newly created document"},
		},
	}
}

// ParseRequest implements Action. The title default applies only when the
// field is absent, so an explicitly empty title stays empty.
func (a *CreateDocumentFromTemplate) ParseRequest(args map[string]any) (any, error) {
	var req CreateFromTemplateRequest
	if err := decodeArgs(args, &req); err != nil {
		return nil, err
	}
	if _, present := args["new_document_title"]; !present {
		req.NewDocumentTitle = DefaultTemplateTitle
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// Execute implements Action.
func (a *CreateDocumentFromTemplate) Execute(ctx context.Context, reqAny any, auth docs.AuthContext, exec ExecContext) Envelope {
	return guard(func() Envelope {
		req, ok := reqAny.(*CreateFromTemplateRequest)
		if !ok {
			return wrongRequestType(a, reqAny)
		}

		copyResp, err := exec.Client.CopyDocument(ctx, auth, req.TemplateDocumentID, req.NewDocumentTitle)
		if err != nil {
			return Failed(KindNetwork, err)
		}
		if !copyResp.OK() {
			return UpstreamFailed(copyResp)
		}

		var doc docs.Document
		if err := json.Unmarshal(copyResp.Body, &doc); err != nil {
			return Failed(KindEncoding, fmt.Errorf("failed to decode copy response: %w", err))
		}
		newID := doc.ID()
		if newID == "" {
			env := Failed(KindEncoding, fmt.Errorf("copy response carries no document id"))
			env.ResponseData.NewDocument = copyResp.Body
			return env
		}

		// Replacements always target the production host, whatever base URL
		// the caller supplied for the copy.
		prodAuth := docs.AuthContext{Headers: auth.Headers}
		update, err := exec.Client.BatchUpdate(ctx, prodAuth, newID, replacementBody(req.Replacements))
		if err != nil {
			env := Failed(KindNetwork, err)
			env.ResponseData.NewDocument = copyResp.Body
			return env
		}
		if !update.OK() {
			exec.logger().Warn("placeholder replacement failed",
				logging.Action(a.Name()),
				logging.Document(newID),
			)
			env := UpstreamFailed(update)
			env.ResponseData.NewDocument = copyResp.Body
			return env
		}

		env := Succeeded(newID, update.Body)
		env.ResponseData.NewDocument = copyResp.Body
		return env
	})
}

// replacementBody builds one case-sensitive replaceAllText sub-request per
// placeholder, in deterministic key order.
func replacementBody(replacements map[string]string) *docs.BatchUpdateBody {
	keys := make([]string, 0, len(replacements))
	for placeholder := range replacements {
		keys = append(keys, placeholder)
	}
	sort.Strings(keys)

	body := &docs.BatchUpdateBody{}
	for _, placeholder := range keys {
		body.Requests = append(body.Requests, docs.UpdateRequest{
			ReplaceAllText: &docs.ReplaceAllTextRequest{
				ContainsText: docs.SubstringMatch{Text: placeholder, MatchCase: true},
				ReplaceText:  replacements[placeholder],
			},
		})
	}
	return body
}
