package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/teemow/docsbridge/internal/docs"
	"github.com/teemow/docsbridge/internal/google"
	"github.com/teemow/docsbridge/internal/instrumentation"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	docsClient *docs.Client
	providers  map[string]google.AuthProvider // account name to credential provider

	instrumentationProvider *instrumentation.Provider
	auditLogger             *instrumentation.AuditLogger

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context
func NewServerContext(ctx context.Context, client *docs.Client, provider google.AuthProvider) (*ServerContext, error) {
	if client == nil {
		return nil, fmt.Errorf("docs client is required")
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	providers := make(map[string]google.AuthProvider)
	if provider != nil {
		providers["default"] = provider
	}

	return &ServerContext{
		ctx:        shutdownCtx,
		cancel:     cancel,
		docsClient: client,
		providers:  providers,
		shutdown:   false,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// DocsClient returns the shared document-service client
func (sc *ServerContext) DocsClient() *docs.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.docsClient
}

// AuthProviderForAccount returns the credential provider for a specific
// account, or nil when none is registered
func (sc *ServerContext) AuthProviderForAccount(account string) google.AuthProvider {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.providers[account]
}

// AuthProvider returns the credential provider for the default account
func (sc *ServerContext) AuthProvider() google.AuthProvider {
	return sc.AuthProviderForAccount("default")
}

// SetAuthProviderForAccount registers the credential provider for an account
func (sc *ServerContext) SetAuthProviderForAccount(account string, provider google.AuthProvider) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.providers[account] = provider
}

// AuthContextForAccount resolves the authorization context for an account.
func (sc *ServerContext) AuthContextForAccount(ctx context.Context, account string) (docs.AuthContext, error) {
	provider := sc.AuthProviderForAccount(account)
	if provider == nil {
		return docs.AuthContext{}, fmt.Errorf("no credentials configured for account %q", account)
	}
	return provider.AuthContext(ctx)
}

// SetInstrumentationProvider sets the instrumentation provider
func (sc *ServerContext) SetInstrumentationProvider(provider *instrumentation.Provider) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.instrumentationProvider = provider
}

// InstrumentationProvider returns the instrumentation provider, which may be nil
func (sc *ServerContext) InstrumentationProvider() *instrumentation.Provider {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.instrumentationProvider
}

// Metrics returns the metrics recorder, or nil when instrumentation is off
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	if sc.instrumentationProvider == nil {
		return nil
	}
	return sc.instrumentationProvider.Metrics()
}

// SetAuditLogger sets the audit logger
func (sc *ServerContext) SetAuditLogger(logger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = logger
}

// AuditLogger returns the audit logger, which may be nil
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
