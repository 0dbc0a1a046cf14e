package docs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/teemow/docsbridge/internal/logging"
)

const (
	// ProductionBaseURL is the document-service host used when the caller
	// supplies no base URL of its own.
	ProductionBaseURL = "https://docs.googleapis.com"

	// DefaultTimeout bounds every outbound call. The service itself imposes
	// no client timeout; an unbounded call would block the invoking worker
	// indefinitely on a hung upstream.
	DefaultTimeout = 30 * time.Second

	documentsPath = "/v1/documents"
)

// Client issues requests against the document-service API. It holds no
// per-invocation state; the AuthContext passed to each call decides the
// target host and credentials, so a single Client is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Used by tests to point
// at a fake upstream and by callers that need custom transport settings.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the structured logger used for request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a document-service client with a bounded default timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateDocument creates a new document. The body is the creation payload;
// the plain variant is CreateDocumentBody{Title: ...}, the from-text variant
// additionally carries a Body with a single text run.
func (c *Client) CreateDocument(ctx context.Context, auth AuthContext, body *CreateDocumentBody) (*Response, error) {
	resp, err := c.do(ctx, auth, http.MethodPost, documentsPath, nil, body)
	if err != nil {
		return nil, &DocsError{Op: "createDocument", Err: err}
	}
	return resp, nil
}

// BatchUpdate posts a mutation payload against a document. The body is
// usually a *BatchUpdateBody; the create action posts a document body here
// instead, so the payload type is left open.
func (c *Client) BatchUpdate(ctx context.Context, auth AuthContext, documentID string, body any) (*Response, error) {
	if documentID == "" {
		return nil, &DocsError{Op: "batchUpdate", Err: fmt.Errorf("documentID is required")}
	}

	path := fmt.Sprintf("%s/%s:batchUpdate", documentsPath, url.PathEscape(documentID))
	resp, err := c.do(ctx, auth, http.MethodPost, path, nil, body)
	if err != nil {
		return nil, &DocsError{Op: "batchUpdate", DocumentID: documentID, Err: err}
	}
	return resp, nil
}

// CopyDocument copies an existing document under a new title.
func (c *Client) CopyDocument(ctx context.Context, auth AuthContext, documentID, title string) (*Response, error) {
	if documentID == "" {
		return nil, &DocsError{Op: "copyDocument", Err: fmt.Errorf("documentID is required")}
	}

	path := fmt.Sprintf("%s/%s:copy", documentsPath, url.PathEscape(documentID))
	resp, err := c.do(ctx, auth, http.MethodPost, path, nil, map[string]string{"title": title})
	if err != nil {
		return nil, &DocsError{Op: "copyDocument", DocumentID: documentID, Err: err}
	}
	return resp, nil
}

// UploadDocument uploads UTF-8 text content as a new document.
func (c *Client) UploadDocument(ctx context.Context, auth AuthContext, body *UploadBody) (*Response, error) {
	resp, err := c.do(ctx, auth, http.MethodPost, documentsPath+":upload", nil, body)
	if err != nil {
		return nil, &DocsError{Op: "uploadDocument", Err: err}
	}
	return resp, nil
}

// FindByTitle queries documents by exact title.
func (c *Client) FindByTitle(ctx context.Context, auth AuthContext, title string) (*Response, error) {
	query := url.Values{"title": []string{title}}
	resp, err := c.do(ctx, auth, http.MethodGet, documentsPath, query, nil)
	if err != nil {
		return nil, &DocsError{Op: "findByTitle", Err: err}
	}
	return resp, nil
}

// BaseURL resolves the effective base URL for an auth context.
func BaseURL(auth AuthContext) string {
	if auth.BaseURL != "" {
		return auth.BaseURL
	}
	return ProductionBaseURL
}

// do issues a single HTTP request and returns the status code and raw body.
// Non-2xx statuses are returned, not converted to errors.
func (c *Client) do(ctx context.Context, auth AuthContext, method, path string, query url.Values, body any) (*Response, error) {
	endpoint := BaseURL(auth) + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	for k, v := range auth.Headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("document-service call",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration(logging.KeyDuration, time.Since(start)),
	)

	return &Response{StatusCode: resp.StatusCode, Body: raw}, nil
}
