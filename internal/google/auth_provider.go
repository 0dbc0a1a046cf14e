package google

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"

	"github.com/teemow/docsbridge/internal/docs"
)

// Environment variables consulted by the env provider.
const (
	// EnvAPIToken carries the bearer token for the document service.
	EnvAPIToken = "DOCS_API_TOKEN"

	// EnvAPIBaseURL overrides the document-service base URL.
	EnvAPIBaseURL = "DOCS_API_BASE_URL"
)

// AuthProvider yields an authorization context for a single invocation.
type AuthProvider interface {
	AuthContext(ctx context.Context) (docs.AuthContext, error)
}

// StaticProvider returns a fixed token and base URL on every call.
type StaticProvider struct {
	Token   string
	BaseURL string
}

// AuthContext implements AuthProvider.
func (p *StaticProvider) AuthContext(_ context.Context) (docs.AuthContext, error) {
	if p.Token == "" {
		return docs.AuthContext{}, fmt.Errorf("no API token configured")
	}
	return docs.AuthContext{
		Headers: bearerHeaders(p.Token),
		BaseURL: p.BaseURL,
	}, nil
}

// EnvProvider reads the token and base URL from the environment on every
// call, so rotated credentials take effect without a restart.
type EnvProvider struct{}

// AuthContext implements AuthProvider.
func (p *EnvProvider) AuthContext(_ context.Context) (docs.AuthContext, error) {
	token := os.Getenv(EnvAPIToken)
	if token == "" {
		return docs.AuthContext{}, fmt.Errorf("%s is not set", EnvAPIToken)
	}
	return docs.AuthContext{
		Headers: bearerHeaders(token),
		BaseURL: os.Getenv(EnvAPIBaseURL),
	}, nil
}

// TokenSourceProvider renders whatever token an oauth2.TokenSource yields
// into headers. Refresh behavior belongs to the source.
type TokenSourceProvider struct {
	Source  oauth2.TokenSource
	BaseURL string
}

// AuthContext implements AuthProvider.
func (p *TokenSourceProvider) AuthContext(_ context.Context) (docs.AuthContext, error) {
	if p.Source == nil {
		return docs.AuthContext{}, fmt.Errorf("token source is nil")
	}
	token, err := p.Source.Token()
	if err != nil {
		return docs.AuthContext{}, fmt.Errorf("failed to obtain token: %w", err)
	}
	return docs.AuthContext{
		Headers: bearerHeaders(token.AccessToken),
		BaseURL: p.BaseURL,
	}, nil
}

// NewStaticTokenSource wraps a fixed access token in an oauth2.TokenSource,
// for callers that want the TokenSourceProvider path with a static token.
func NewStaticTokenSource(accessToken string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
}

func bearerHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + token,
	}
}
