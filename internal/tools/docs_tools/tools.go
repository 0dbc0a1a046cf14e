package docs_tools

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/docsbridge/internal/action"
	"github.com/teemow/docsbridge/internal/server"
	"github.com/teemow/docsbridge/internal/tools/common"
)

// Argument names consumed by the tool layer itself rather than the actions.
const (
	argAccount        = "account"
	argTextLength     = "text_length"
	argFileContent    = "file_content"
	argFileContentB64 = "file_content_b64"
)

// RegisterDocsTools registers one MCP tool per action in the toolkit, plus a
// discovery tool listing the toolkit's actions and schemas.
func RegisterDocsTools(s *mcpserver.MCPServer, sc *server.ServerContext, toolkit *action.Toolkit) error {
	if toolkit == nil {
		return fmt.Errorf("toolkit is required")
	}

	for _, a := range toolkit.Actions() {
		a := a
		toolName := "docs_" + a.Name()
		tool := buildTool(toolName, a)

		s.AddTool(tool, common.InstrumentedToolHandlerWithOperation(toolName, upstreamOperation(a.Name()), sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAction(ctx, request, sc, a)
		}))
	}

	listTool := mcp.NewTool("docs_list_actions",
		mcp.WithDescription("List the document actions this server exposes, with their request and response schemas"),
	)
	s.AddTool(listTool, common.InstrumentedToolHandler("docs_list_actions", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListActions(ctx, toolkit)
	}))

	return nil
}

// upstreamOperation names the document-service operation an action performs,
// for operation-level metrics. Actions that make more than one call are
// labeled by the call that creates the document.
func upstreamOperation(actionName string) string {
	switch actionName {
	case "create_document", "create_document_from_text":
		return "create"
	case "append_text_to_document":
		return "batch_update"
	case "create_document_from_template":
		return "copy"
	case "upload_document":
		return "upload"
	case "find_or_create_document":
		return "find"
	default:
		return actionName
	}
}

// buildTool converts an action's request schema into an MCP tool declaration,
// appending the out-of-band arguments the handler consumes.
func buildTool(toolName string, a action.Action) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(a.DisplayName()),
	}

	for _, f := range a.RequestSchema().Fields {
		opts = append(opts, fieldOption(f))
	}

	switch a.Name() {
	case "append_text_to_document":
		opts = append(opts, mcp.WithNumber(argTextLength,
			mcp.Description("Length of the appended text, used to compute the styled character range"),
		))
	case "upload_document":
		opts = append(opts,
			mcp.WithString(argFileContent,
				mcp.Description("File content to upload, as UTF-8 text"),
			),
			mcp.WithString(argFileContentB64,
				mcp.Description("File content to upload, base64-encoded"),
			),
		)
	}

	opts = append(opts, mcp.WithString(argAccount,
		mcp.Description("Account whose credentials to use (defaults to 'default')"),
	))

	return mcp.NewTool(toolName, opts...)
}

func fieldOption(f action.Field) mcp.ToolOption {
	var propOpts []mcp.PropertyOption
	if f.Description != "" {
		propOpts = append(propOpts, mcp.Description(f.Description))
	}
	if f.Required {
		propOpts = append(propOpts, mcp.Required())
	}

	switch f.Type {
	case "boolean":
		return mcp.WithBoolean(f.Name, propOpts...)
	case "integer", "number":
		return mcp.WithNumber(f.Name, propOpts...)
	case "object", "mapping":
		return mcp.WithObject(f.Name, propOpts...)
	default:
		if def, ok := f.Default.(string); ok && def != "" {
			propOpts = append(propOpts, mcp.DefaultString(def))
		}
		return mcp.WithString(f.Name, propOpts...)
	}
}

func handleAction(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, a action.Action) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	account := common.GetAccountFromArgs(ctx, args)
	auth, err := sc.AuthContextForAccount(ctx, account)
	if err != nil {
		return envelopeResult(action.Failed(action.KindValidation, err))
	}

	exec := action.ExecContext{
		Client: sc.DocsClient(),
		Logger: slog.Default(),
	}

	// Pull out the arguments the action schemas do not model before parsing.
	actionArgs := make(map[string]any, len(args))
	for k, v := range args {
		switch k {
		case argAccount, argTextLength, argFileContent, argFileContentB64:
			continue
		}
		actionArgs[k] = v
	}

	if length, ok := args[argTextLength].(float64); ok {
		exec.TextLength = int(length)
	}

	if content, ok := args[argFileContent].(string); ok && content != "" {
		exec.File = strings.NewReader(content)
	} else if encoded, ok := args[argFileContentB64].(string); ok && encoded != "" {
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return envelopeResult(action.Failed(action.KindValidation, fmt.Errorf("invalid base64 file content: %w", err)))
		}
		exec.File = bytes.NewReader(decoded)
	}

	req, err := a.ParseRequest(actionArgs)
	if err != nil {
		return envelopeResult(action.Failed(action.KindValidation, err))
	}

	return envelopeResult(a.Execute(ctx, req, auth, exec))
}

// envelopeResult renders the envelope as the tool result. Failure envelopes
// are marked as tool errors but still carry the full envelope JSON.
func envelopeResult(env action.Envelope) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(env)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to serialize result: %v", err)), nil
	}
	if !env.ResponseData.Success {
		return mcp.NewToolResultError(string(payload)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

// actionListing is the discovery document returned by docs_list_actions.
type actionListing struct {
	Toolkit  string        `json:"toolkit"`
	Actions  []actionEntry `json:"actions"`
	Triggers []string      `json:"triggers"`
}

type actionEntry struct {
	Name           string        `json:"name"`
	DisplayName    string        `json:"display_name"`
	RequestSchema  action.Schema `json:"request_schema"`
	ResponseSchema action.Schema `json:"response_schema"`
}

func handleListActions(_ context.Context, toolkit *action.Toolkit) (*mcp.CallToolResult, error) {
	listing := actionListing{
		Toolkit:  toolkit.Name(),
		Triggers: []string{},
	}
	for _, a := range toolkit.Actions() {
		listing.Actions = append(listing.Actions, actionEntry{
			Name:           a.Name(),
			DisplayName:    a.DisplayName(),
			RequestSchema:  a.RequestSchema(),
			ResponseSchema: a.ResponseSchema(),
		})
	}

	payload, err := json.MarshalIndent(listing, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to serialize action listing: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
